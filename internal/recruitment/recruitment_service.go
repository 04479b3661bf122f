package recruitment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/employee"
	recruitmenterrors "github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/recruitment/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeCreator is the slice of the employee service the conversion flow
// needs.
type EmployeeCreator interface {
	Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
}

//go:generate mockgen -source=recruitment_service.go -destination=mock/recruitment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCandidateRequest) (CandidateResponse, error)
	GetAll(ctx context.Context, stage string) ([]CandidateResponse, error)
	GetPipeline(ctx context.Context) (PipelineResponse, error)
	GetByID(ctx context.Context, id string) (CandidateResponse, error)
	Update(ctx context.Context, id string, req UpdateCandidateRequest) (CandidateResponse, error)
	Move(ctx context.Context, id string, req MoveCandidateRequest) (CandidateResponse, error)
	Convert(ctx context.Context, id string, req ConvertCandidateRequest) (ConvertCandidateResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeCreator
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees EmployeeCreator, logger ...*zap.Logger) Service {
	l := zap.L().Named("recruitment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recruitment.service")
	}
	return &service{db: db, repo: repo, employees: employees, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCandidateRequest) (CandidateResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CandidateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	taken, err := qtx.EmailExists(ctx, req.Email, nil)
	if err != nil {
		return CandidateResponse{}, err
	}
	if taken {
		return CandidateResponse{}, recruitmenterrors.ErrEmailTaken
	}

	candidate := &Candidate{
		ID:        uuid.New(),
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Position:  req.Position,
		Stage:     StageApplied,
		ResumeURL: req.ResumeURL,
		Notes:     req.Notes,
	}

	if err := qtx.Create(ctx, candidate); err != nil {
		s.logger.Error("create candidate persist failed", zap.Error(err))
		return CandidateResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return CandidateResponse{}, err
	}

	s.logger.Info("create candidate success",
		zap.String("candidate_id", candidate.ID.String()),
		zap.String("position", candidate.Position),
	)
	return mapToResponse(*candidate), nil
}

func (s *service) GetAll(ctx context.Context, stage string) ([]CandidateResponse, error) {
	if stage != "" && !IsValidStage(stage) {
		return nil, recruitmenterrors.ErrInvalidStage
	}

	candidates, err := s.repo.FindAll(ctx, stage)
	if err != nil {
		return nil, err
	}

	res := make([]CandidateResponse, len(candidates))
	for i, c := range candidates {
		res[i] = mapToResponse(c)
	}
	return res, nil
}

// GetPipeline returns the kanban board: every stage is present even when
// empty so the client renders stable columns.
func (s *service) GetPipeline(ctx context.Context) (PipelineResponse, error) {
	candidates, err := s.repo.FindAll(ctx, "")
	if err != nil {
		return nil, err
	}

	board := PipelineResponse{
		StageApplied:   {},
		StageScreening: {},
		StageInterview: {},
		StageOffer:     {},
		StageHired:     {},
		StageRejected:  {},
	}
	for _, c := range candidates {
		board[c.Stage] = append(board[c.Stage], mapToResponse(c))
	}
	return board, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CandidateResponse, error) {
	candidate, err := s.findCandidate(ctx, s.repo, id)
	if err != nil {
		return CandidateResponse{}, err
	}
	return mapToResponse(*candidate), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCandidateRequest) (CandidateResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CandidateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	candidate, err := s.findCandidate(ctx, qtx, id)
	if err != nil {
		return CandidateResponse{}, err
	}

	taken, err := qtx.EmailExists(ctx, req.Email, &id)
	if err != nil {
		return CandidateResponse{}, err
	}
	if taken {
		return CandidateResponse{}, recruitmenterrors.ErrEmailTaken
	}

	candidate.FullName = req.FullName
	candidate.Email = req.Email
	candidate.Phone = req.Phone
	candidate.Position = req.Position
	candidate.ResumeURL = req.ResumeURL
	candidate.Notes = req.Notes

	if err := qtx.Update(ctx, candidate); err != nil {
		return CandidateResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return CandidateResponse{}, err
	}
	return mapToResponse(*candidate), nil
}

// Move advances a candidate one stage forward or rejects them. Terminal
// candidates never move again.
func (s *service) Move(ctx context.Context, id string, req MoveCandidateRequest) (CandidateResponse, error) {
	if !IsValidStage(req.Stage) {
		return CandidateResponse{}, recruitmenterrors.ErrInvalidStage
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CandidateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	candidate, err := s.findCandidate(ctx, qtx, id)
	if err != nil {
		return CandidateResponse{}, err
	}

	if !CanMove(candidate.Stage, req.Stage) {
		s.logger.Warn("invalid stage transition",
			zap.String("candidate_id", id),
			zap.String("from", candidate.Stage),
			zap.String("to", req.Stage),
		)
		return CandidateResponse{}, recruitmenterrors.ErrInvalidTransition
	}

	candidate.Stage = req.Stage
	if req.Stage == StageHired {
		now := time.Now().UTC()
		candidate.HiredAt = &now
	}

	if err := qtx.Update(ctx, candidate); err != nil {
		return CandidateResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return CandidateResponse{}, err
	}

	s.logger.Info("candidate moved",
		zap.String("candidate_id", id),
		zap.String("stage", req.Stage),
	)
	return mapToResponse(*candidate), nil
}

// Convert turns a hired candidate into an employee record. The candidate
// row stays for pipeline history.
func (s *service) Convert(ctx context.Context, id string, req ConvertCandidateRequest) (ConvertCandidateResponse, error) {
	candidate, err := s.findCandidate(ctx, s.repo, id)
	if err != nil {
		return ConvertCandidateResponse{}, err
	}
	if candidate.Stage != StageHired {
		return ConvertCandidateResponse{}, recruitmenterrors.ErrNotHired
	}

	created, err := s.employees.Create(ctx, employee.CreateEmployeeRequest{
		FullName:      candidate.FullName,
		Email:         candidate.Email,
		Position:      candidate.Position,
		HireDate:      req.HireDate,
		ContractHours: req.ContractHours,
		BaseSalary:    req.BaseSalary,
	})
	if err != nil {
		s.logger.Error("convert candidate failed",
			zap.String("candidate_id", id),
			zap.Error(err),
		)
		return ConvertCandidateResponse{}, err
	}

	s.logger.Info("candidate converted",
		zap.String("candidate_id", id),
		zap.String("employee_id", created.ID),
	)
	return ConvertCandidateResponse{CandidateID: id, EmployeeID: created.ID}, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return recruitmenterrors.ErrInvalidCandidateID
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) findCandidate(ctx context.Context, repo Repository, id string) (*Candidate, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, recruitmenterrors.ErrInvalidCandidateID
	}

	candidate, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recruitmenterrors.ErrCandidateNotFound
		}
		return nil, err
	}
	return candidate, nil
}

func mapToResponse(c Candidate) CandidateResponse {
	resp := CandidateResponse{
		ID:        c.ID.String(),
		FullName:  c.FullName,
		Email:     c.Email,
		Phone:     c.Phone,
		Position:  c.Position,
		Stage:     c.Stage,
		ResumeURL: c.ResumeURL,
		Notes:     c.Notes,
	}
	if c.HiredAt != nil {
		v := c.HiredAt.Format(time.RFC3339)
		resp.HiredAt = &v
	}
	return resp
}
