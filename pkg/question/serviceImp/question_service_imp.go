package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"placement/database"
	"placement/entities"
	companyRepo "placement/pkg/company/repository"
	"placement/pkg/question/repository"
	"placement/pkg/question/service"
)

type QuestionSvc struct {
	questions repository.QuestionRepository
	companies companyRepo.CompanyRepository
	logger    *slog.Logger
}

// New builds the question service. A nil logger means slog.Default().
func New(q repository.QuestionRepository, c companyRepo.CompanyRepository, logger *slog.Logger) *QuestionSvc {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuestionSvc{questions: q, companies: c, logger: logger.With("component", "questions")}
}

var _ service.QuestionService = (*QuestionSvc)(nil)

// AddQuestions processes items strictly in input order, so a company name that
// appears twice in one batch resolves to the same company.
func (s *QuestionSvc) AddQuestions(ctx context.Context, items []service.CandidateQuestion) (*service.BatchResult, error) {
	if len(items) == 0 {
		return nil, service.ErrEmptyBatch
	}

	res := &service.BatchResult{
		Created:  make([]entities.Question, 0, len(items)),
		Failures: []service.Failure{},
	}
	for i := range items {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch interrupted at item %d: %w", i, err)
		}
		q, fail := s.ingestOne(ctx, i, &items[i])
		if fail != nil {
			s.logger.Debug("question rejected", "index", i, "kind", fail.Kind, "reason", fail.Message)
			res.Failures = append(res.Failures, *fail)
			continue
		}
		res.Created = append(res.Created, *q)
	}

	s.logger.Info("question batch ingested",
		"items", len(items), "created", len(res.Created), "failed", len(res.Failures))
	return res, nil
}

func (s *QuestionSvc) ingestOne(ctx context.Context, idx int, in *service.CandidateQuestion) (*entities.Question, *service.Failure) {
	snapshot := in.Snapshot()
	fail := func(kind service.FailureKind, err error) *service.Failure {
		return &service.Failure{Index: idx, Question: snapshot, Kind: kind, Message: err.Error(), Err: err}
	}

	if err := in.Err(); err != nil {
		return nil, fail(service.FailureValidation, fmt.Errorf("%w: %v", service.ErrMalformedQuestion, err))
	}

	// Only the question text is trimmed; the answer is stored as submitted.
	text := strings.TrimSpace(in.Question)
	if text == "" || in.CorrectAnswer == "" || in.HasOptions == nil {
		return nil, fail(service.FailureValidation, service.ErrMissingFields)
	}
	category, ok := entities.ParseCategory(in.Category)
	if !ok {
		return nil, fail(service.FailureValidation, service.ErrInvalidCategory)
	}
	if *in.HasOptions && (!in.OptionsValid() || len(in.Options) < 2) {
		return nil, fail(service.FailureValidation, service.ErrInvalidOptions)
	}
	refs := in.Company.Compact()
	if len(refs) == 0 {
		return nil, fail(service.FailureValidation, service.ErrCompanyRequired)
	}

	companyIDs, err := s.resolveCompanies(ctx, refs)
	if err != nil {
		s.logger.Error("resolving companies", "index", idx, "err", err)
		return nil, fail(service.FailureCompanyResolution, fmt.Errorf("%w: %v", service.ErrCompanyResolution, err))
	}
	for _, id := range companyIDs {
		if !s.companies.ValidID(id) {
			return nil, fail(service.FailureValidation, fmt.Errorf("%w: %s", service.ErrInvalidCompanyID, id))
		}
	}

	existing, err := s.questions.FindByText(ctx, text)
	switch {
	case err == nil:
		f := fail(service.FailureDuplicate, service.ErrDuplicateQuestion)
		f.ExistingQuestionID = existing.ID
		return nil, f
	case !errors.Is(err, database.ErrNotFound):
		return nil, fail(service.FailurePersistence, fmt.Errorf("%w: duplicate check: %v", service.ErrPersistence, err))
	}

	q := &entities.Question{
		Text:          text,
		Options:       nonNil(in.Options),
		CorrectAnswer: in.CorrectAnswer,
		HasOptions:    *in.HasOptions,
		Category:      category,
		Subcategory:   in.Subcategory,
		Explanation:   in.Explanation,
		CompanyRefs:   companyIDs,
		Images:        in.Images.Compact(),
	}
	if err := s.questions.Create(ctx, q); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			f := fail(service.FailureDuplicate, service.ErrDuplicateQuestion)
			if winner, ferr := s.questions.FindByText(ctx, text); ferr == nil {
				f.ExistingQuestionID = winner.ID
			}
			return nil, f
		}
		return nil, fail(service.FailurePersistence, fmt.Errorf("%w: %v", service.ErrPersistence, err))
	}

	if err := s.linkCompanies(ctx, q.ID, companyIDs); err != nil {
		msg := fmt.Sprintf("linking companies failed (%v); question was rolled back", err)
		if rerr := s.rollback(ctx, q.ID, companyIDs); rerr != nil {
			s.logger.Error("question left inconsistent after failed company link",
				"question_id", q.ID, "link_err", err, "rollback_err", rerr)
			msg = fmt.Sprintf("linking companies failed (%v); rollback failed (%v)", err, rerr)
		}
		return nil, fail(service.FailurePersistence, fmt.Errorf("%w: %s", service.ErrPersistence, msg))
	}
	return q, nil
}

// resolveCompanies maps ids and names to company ids, creating unknown names.
// Duplicates collapse onto their first position.
func (s *QuestionSvc) resolveCompanies(ctx context.Context, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		id := ref
		if !s.companies.ValidID(ref) {
			c, created, err := s.companies.FindOrCreateByName(ctx, ref)
			if err != nil {
				return nil, err
			}
			if created {
				s.logger.Info("company created", "company", c.Name, "id", c.ID)
			}
			id = c.ID
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// linkCompanies adds questionID to every company concurrently and waits for all.
func (s *QuestionSvc) linkCompanies(ctx context.Context, questionID string, companyIDs []string) error {
	var g errgroup.Group
	for _, cid := range companyIDs {
		cid := cid // per-iteration copy; go directive is 1.21 (pre-1.22 loop semantics)
		g.Go(func() error {
			if err := s.companies.AddQuestionRef(ctx, cid, questionID); err != nil {
				return fmt.Errorf("company %s: %w", cid, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *QuestionSvc) rollback(ctx context.Context, questionID string, companyIDs []string) error {
	var errs []error
	for _, cid := range companyIDs {
		if err := s.companies.RemoveQuestionRef(ctx, cid, questionID); err != nil {
			errs = append(errs, fmt.Errorf("unlink company %s: %w", cid, err))
		}
	}
	if err := s.questions.Delete(ctx, questionID); err != nil {
		errs = append(errs, fmt.Errorf("delete question: %w", err))
	}
	return errors.Join(errs...)
}

func (s *QuestionSvc) RetrieveByCompanies(ctx context.Context, refs []string) (*service.CompanyQuestions, error) {
	refs = service.StringList(refs).Compact()
	if len(refs) == 0 {
		return nil, service.ErrCompanyLookupRequired
	}

	var found []entities.Company
	seen := map[string]bool{}
	for _, ref := range refs {
		var (
			c   *entities.Company
			err error
		)
		if s.companies.ValidID(ref) {
			c, err = s.companies.FindByID(ctx, ref)
		} else {
			c, err = s.companies.FindByName(ctx, ref)
		}
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve company %q: %w", ref, err)
		}
		if !seen[c.ID] {
			seen[c.ID] = true
			found = append(found, *c)
		}
	}
	if len(found) == 0 {
		return nil, service.ErrNoCompanies
	}

	out := &service.CompanyQuestions{
		Companies: make([]entities.CompanySummary, len(found)),
		Questions: []service.QuestionView{},
	}
	var questionIDs []string
	seenQ := map[string]bool{}
	for i := range found {
		out.Companies[i] = found[i].Summary()
		for _, qid := range found[i].QuestionRefs {
			if !seenQ[qid] {
				seenQ[qid] = true
				questionIDs = append(questionIDs, qid)
			}
		}
	}
	if len(questionIDs) == 0 {
		return out, nil
	}

	questions, err := s.questions.FindByIDs(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	summaries, err := s.companySummaries(ctx, questions)
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		view := service.QuestionView{Question: q, Companies: []entities.CompanySummary{}}
		for _, cid := range q.CompanyRefs {
			if cs, ok := summaries[cid]; ok {
				view.Companies = append(view.Companies, cs)
			}
		}
		out.Questions = append(out.Questions, view)
	}
	return out, nil
}

// companySummaries loads every company referenced by questions, keyed by id.
func (s *QuestionSvc) companySummaries(ctx context.Context, questions []entities.Question) (map[string]entities.CompanySummary, error) {
	var ids []string
	seen := map[string]bool{}
	for _, q := range questions {
		for _, cid := range q.CompanyRefs {
			if !seen[cid] {
				seen[cid] = true
				ids = append(ids, cid)
			}
		}
	}
	companies, err := s.companies.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load companies: %w", err)
	}
	out := make(map[string]entities.CompanySummary, len(companies))
	for i := range companies {
		out[companies[i].ID] = companies[i].Summary()
	}
	return out, nil
}

func (s *QuestionSvc) CompanyNames(ctx context.Context) ([]string, error) {
	return s.companies.ListNames(ctx)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
