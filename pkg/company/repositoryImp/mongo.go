package repositoryImp

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"placement/database"
	"placement/entities"
	"placement/pkg/company/repository"
)

type companyDoc struct {
	ID        primitive.ObjectID   `bson:"_id"`
	Name      string               `bson:"company"`
	NameKey   string               `bson:"name_key,omitempty"`
	Questions []primitive.ObjectID `bson:"questions"`
	ImageURL  string               `bson:"company_img,omitempty"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

func (d *companyDoc) entity() *entities.Company {
	refs := make([]string, len(d.Questions))
	for i, q := range d.Questions {
		refs[i] = q.Hex()
	}
	return &entities.Company{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		NameKey:      d.NameKey,
		QuestionRefs: refs,
		ImageURL:     d.ImageURL,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type mongoRepo struct{ col *mongo.Collection }

func NewMongo(db *mongo.Database) repository.CompanyRepository {
	return &mongoRepo{col: db.Collection(database.CompaniesCollection)}
}

func (r *mongoRepo) ValidID(id string) bool { return primitive.IsValidObjectID(id) }

func (r *mongoRepo) FindByID(ctx context.Context, id string) (*entities.Company, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, database.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoRepo) FindByIDs(ctx context.Context, ids []string) ([]entities.Company, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []entities.Company{}, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}},
		options.Find().SetSort(bson.D{{Key: "company", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []companyDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entities.Company, len(docs))
	for i := range docs {
		out[i] = *docs[i].entity()
	}
	return out, nil
}

func (r *mongoRepo) FindByName(ctx context.Context, name string) (*entities.Company, error) {
	return r.findOne(ctx, nameFilter(name))
}

func (r *mongoRepo) FindOrCreateByName(ctx context.Context, name string) (*entities.Company, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, errors.New("company name is empty")
	}
	// Older documents may lack name_key; prefer them over inserting a twin.
	if c, err := r.FindByName(ctx, name); err == nil {
		return c, false, nil
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, false, err
	}

	now := time.Now().UTC()
	newID := primitive.NewObjectID()
	update := bson.M{"$setOnInsert": bson.M{
		"_id":       newID,
		"company":   name,
		"questions": bson.A{},
		"createdAt": now,
		"updatedAt": now,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc companyDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"name_key": database.NameKey(name)}, update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		// lost an upsert race on the unique index; the winner is readable now
		c, ferr := r.FindByName(ctx, name)
		return c, false, ferr
	}
	if err != nil {
		return nil, false, fmt.Errorf("upsert company %q: %w", name, err)
	}
	return doc.entity(), doc.ID == newID, nil
}

func (r *mongoRepo) AddQuestionRef(ctx context.Context, companyID, questionID string) error {
	cid, qid, err := refIDs(companyID, questionID)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateByID(ctx, cid, bson.M{
		"$addToSet": bson.M{"questions": qid},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("company %s: %w", companyID, database.ErrNotFound)
	}
	return nil
}

func (r *mongoRepo) RemoveQuestionRef(ctx context.Context, companyID, questionID string) error {
	cid, qid, err := refIDs(companyID, questionID)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateByID(ctx, cid, bson.M{"$pull": bson.M{"questions": qid}})
	return err
}

func (r *mongoRepo) ListNames(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"company": 1, "_id": 0}).
		SetSort(bson.D{{Key: "company", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	names := []string{}
	for cur.Next(ctx) {
		var row struct {
			Name string `bson:"company"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		names = append(names, row.Name)
	}
	return names, cur.Err()
}

func (r *mongoRepo) findOne(ctx context.Context, filter any) (*entities.Company, error) {
	var doc companyDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return doc.entity(), nil
}

// nameFilter is an anchored, case-insensitive match on the stored name.
func nameFilter(name string) bson.M {
	return bson.M{"company": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(name)) + "$",
		Options: "i",
	}}
}

func refIDs(companyID, questionID string) (primitive.ObjectID, primitive.ObjectID, error) {
	cid, err := primitive.ObjectIDFromHex(companyID)
	if err != nil {
		return cid, cid, fmt.Errorf("company id %q: %w", companyID, err)
	}
	qid, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return cid, qid, fmt.Errorf("question id %q: %w", questionID, err)
	}
	return cid, qid, nil
}

func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}
