package repositoryImp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"placement/database"
	"placement/entities"
	"placement/pkg/question/repository"
)

type questionDoc struct {
	ID            primitive.ObjectID   `bson:"_id"`
	Text          string               `bson:"question"`
	Options       []string             `bson:"options"`
	CorrectAnswer string               `bson:"correctAnswer"`
	HasOptions    bool                 `bson:"hasOptions"`
	Category      string               `bson:"category"`
	Subcategory   string               `bson:"subcategory,omitempty"`
	Explanation   string               `bson:"explanation"`
	Company       []primitive.ObjectID `bson:"company"`
	Images        []string             `bson:"question_image"`
	CreatedAt     time.Time            `bson:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt"`
}

func (d *questionDoc) entity() entities.Question {
	refs := make([]string, len(d.Company))
	for i, c := range d.Company {
		refs[i] = c.Hex()
	}
	return entities.Question{
		ID:            d.ID.Hex(),
		Text:          d.Text,
		Options:       nonNil(d.Options),
		CorrectAnswer: d.CorrectAnswer,
		HasOptions:    d.HasOptions,
		Category:      entities.Category(d.Category),
		Subcategory:   d.Subcategory,
		Explanation:   d.Explanation,
		CompanyRefs:   refs,
		Images:        nonNil(d.Images),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type mongoRepo struct{ col *mongo.Collection }

func NewMongo(db *mongo.Database) repository.QuestionRepository {
	return &mongoRepo{col: db.Collection(database.QuestionsCollection)}
}

func (r *mongoRepo) Create(ctx context.Context, q *entities.Question) error {
	oid := primitive.NewObjectID()
	if q.ID != "" {
		var err error
		if oid, err = primitive.ObjectIDFromHex(q.ID); err != nil {
			return fmt.Errorf("question id %q: %w", q.ID, err)
		}
	}
	companies := make([]primitive.ObjectID, 0, len(q.CompanyRefs))
	for _, ref := range q.CompanyRefs {
		cid, err := primitive.ObjectIDFromHex(ref)
		if err != nil {
			return fmt.Errorf("company id %q: %w", ref, err)
		}
		companies = append(companies, cid)
	}

	now := time.Now().UTC()
	doc := questionDoc{
		ID:            oid,
		Text:          q.Text,
		Options:       nonNil(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		HasOptions:    q.HasOptions,
		Category:      string(q.Category),
		Subcategory:   q.Subcategory,
		Explanation:   q.Explanation,
		Company:       companies,
		Images:        nonNil(q.Images),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("question %q: %w", q.Text, database.ErrDuplicateKey)
		}
		return err
	}
	*q = doc.entity()
	return nil
}

func (r *mongoRepo) FindByText(ctx context.Context, text string) (*entities.Question, error) {
	var doc questionDoc
	if err := r.col.FindOne(ctx, bson.M{"question": text}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	q := doc.entity()
	return &q, nil
}

func (r *mongoRepo) FindByIDs(ctx context.Context, ids []string) ([]entities.Question, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	out := []entities.Question{}
	if len(oids) == 0 {
		return out, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []questionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for i := range docs {
		out = append(out, docs[i].entity())
	}
	return out, nil
}

func (r *mongoRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("question id %q: %w", id, err)
	}
	_, err = r.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
