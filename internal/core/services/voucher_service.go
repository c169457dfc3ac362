package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
	"github.com/SscSPs/voucher_engine/internal/dto"
	"github.com/SscSPs/voucher_engine/internal/platform/metrics"
	"github.com/SscSPs/voucher_engine/internal/utils/accounting"
	"github.com/google/uuid"
)

const defaultVoucherPageSize = 50

// voucherService implements the VoucherSvcFacade interface
type voucherService struct {
	BaseService
	voucherRepo portsrepo.VoucherRepositoryFacade
	accountRepo portsrepo.AccountReader
	validator   *VoucherValidator
}

// VoucherServiceOption is a functional option for configuring the voucher service
type VoucherServiceOption func(*voucherService)

// WithVoucherMetrics records engine metrics on m.
func WithVoucherMetrics(m *metrics.Metrics) VoucherServiceOption {
	return func(s *voucherService) {
		s.Metrics = m
	}
}

// WithVoucherClock overrides the time source used for audit fields.
func WithVoucherClock(clock func() time.Time) VoucherServiceOption {
	return func(s *voucherService) {
		s.Clock = clock
	}
}

// NewVoucherService creates a new voucher service with the provided options
func NewVoucherService(voucherRepo portsrepo.VoucherRepositoryFacade, accountRepo portsrepo.AccountReader, options ...VoucherServiceOption) portssvc.VoucherSvcFacade {
	svc := &voucherService{
		voucherRepo: voucherRepo,
		accountRepo: accountRepo,
		validator:   NewVoucherValidator(accountRepo),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// prepare validates the user lines of v, appends the system line, numbers the
// lines and computes the amount. It runs before every full line-set write.
func (s *voucherService) prepare(ctx context.Context, v *domain.Voucher) error {
	if _, err := s.validator.Validate(ctx, *v); err != nil {
		return err
	}

	lines, err := GenerateSystemLine(*v)
	if err != nil {
		return err
	}
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].VoucherID = v.VoucherID
		lines[i].LineNo = i + 1
	}
	v.Lines = lines

	amount, err := CalculateVoucherAmount(v.Type, v.Lines)
	if err != nil {
		return err
	}
	v.Amount = amount
	return nil
}

func (s *voucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, userID string) (*domain.Voucher, error) {
	now := s.Now()
	voucher := domain.Voucher{
		VoucherID:       uuid.NewString(),
		Type:            req.Type,
		Date:            domain.CalendarDate(req.Date.Time),
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		AccountID:       req.AccountID,
		Description:     req.Description,
		Status:          domain.StatusDraft,
		Lines:           dto.ToDomainLines(req.Lines),
		Attachments:     dto.ToDomainAttachments(req.Attachments),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.prepare(ctx, &voucher); err != nil {
		s.LogRejection(ctx, err, "Voucher rejected on create",
			slog.String("voucher_type", string(req.Type)),
			slog.String("user_id", userID))
		return nil, err
	}

	number, err := s.voucherRepo.CreateVoucher(ctx, voucher)
	if err != nil {
		s.LogError(ctx, err, "Failed to save voucher in repository", slog.String("voucher_id", voucher.VoucherID))
		return nil, err
	}
	voucher.VoucherNumber = number

	s.Metrics.RecordCreated(string(voucher.Type))
	s.LogInfo(ctx, "Voucher created successfully",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("voucher_number", number),
		slog.String("amount", voucher.Amount.String()))
	return &voucher, nil
}

func (s *voucherService) GetVoucher(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find voucher by ID in repository", slog.String("voucher_id", voucherID))
		}
		return nil, err
	}
	return voucher, nil
}

func (s *voucherService) ListVouchers(ctx context.Context, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultVoucherPageSize
	}

	var filter domain.VoucherFilter
	if params.Type != "" {
		t := params.Type
		filter.Type = &t
	}
	if params.Status != "" {
		st := params.Status
		filter.Status = &st
	}

	vouchers, nextToken, err := s.voucherRepo.ListVouchers(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list vouchers from repository", slog.Int("limit", limit))
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}

	s.LogDebug(ctx, "Vouchers listed successfully", slog.Int("count", len(vouchers)))
	return &dto.ListVouchersResponse{
		Vouchers:  dto.ToVoucherResponses(vouchers),
		NextToken: nextToken,
	}, nil
}

func (s *voucherService) UpdateVoucher(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error) {
	existing, err := s.GetVoucher(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if err := existing.Status.EnsureEditable(); err != nil {
		s.LogRejection(ctx, err, "Voucher edit rejected", slog.String("voucher_id", voucherID))
		return nil, err
	}
	// A reversal mirrors its original; its lines are not user input.
	if existing.IsReversal() {
		s.LogRejection(ctx, domain.ErrReversalLocked, "Voucher edit rejected", slog.String("voucher_id", voucherID))
		return nil, domain.ErrReversalLocked
	}

	updated := *existing
	updated.Date = domain.CalendarDate(req.Date.Time)
	updated.PaymentMethod = req.PaymentMethod
	updated.ReferenceNumber = req.ReferenceNumber
	updated.AccountID = req.AccountID
	updated.Description = req.Description
	updated.Lines = dto.ToDomainLines(req.Lines)
	updated.Attachments = dto.ToDomainAttachments(req.Attachments)
	updated.LastUpdatedAt = s.Now()
	updated.LastUpdatedBy = userID

	if err := s.prepare(ctx, &updated); err != nil {
		s.LogRejection(ctx, err, "Voucher rejected on update", slog.String("voucher_id", voucherID))
		return nil, err
	}

	if err := s.voucherRepo.ReplaceVoucher(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to replace voucher in repository", slog.String("voucher_id", voucherID))
		return nil, err
	}

	s.LogInfo(ctx, "Voucher updated successfully",
		slog.String("voucher_id", voucherID),
		slog.String("amount", updated.Amount.String()))
	return &updated, nil
}

// transition loads a voucher and checks that action is allowed from its status.
func (s *voucherService) transition(ctx context.Context, voucherID string, action domain.VoucherAction) (*domain.Voucher, domain.VoucherStatus, error) {
	voucher, err := s.GetVoucher(ctx, voucherID)
	if err != nil {
		return nil, "", err
	}
	next, err := voucher.Status.Transition(action)
	if err != nil {
		s.LogRejection(ctx, err, "Voucher transition rejected",
			slog.String("voucher_id", voucherID),
			slog.String("action", string(action)))
		return nil, "", err
	}
	return voucher, next, nil
}

func (s *voucherService) SubmitVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error) {
	voucher, next, err := s.transition(ctx, voucherID, domain.ActionSubmit)
	if err != nil {
		return nil, err
	}

	// Stored lines include the generated counter-entry; rules apply to user lines.
	userView := *voucher
	userView.Lines = voucher.UserLines()
	if _, err := s.validator.Validate(ctx, userView); err != nil {
		s.LogRejection(ctx, err, "Voucher failed validation on submit", slog.String("voucher_id", voucherID))
		return nil, err
	}
	if err := VerifySystemLines(*voucher); err != nil {
		s.LogError(ctx, err, "Stored voucher violates system line invariants", slog.String("voucher_id", voucherID))
		return nil, err
	}

	now := s.Now()
	if err := s.voucherRepo.UpdateVoucherStatus(ctx, voucherID, voucher.Status, next, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to submit voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}

	voucher.Status = next
	voucher.SubmittedBy = &userID
	voucher.SubmittedAt = &now
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = userID

	s.Metrics.RecordTransition(string(voucher.Type), string(domain.ActionSubmit))
	s.LogInfo(ctx, "Voucher submitted", slog.String("voucher_id", voucherID))
	return voucher, nil
}

func (s *voucherService) ApproveVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error) {
	voucher, next, err := s.transition(ctx, voucherID, domain.ActionApprove)
	if err != nil {
		return nil, err
	}
	if voucher.SubmittedBy != nil && *voucher.SubmittedBy == userID {
		s.LogRejection(ctx, domain.ErrSelfApproval, "Voucher approval rejected",
			slog.String("voucher_id", voucherID),
			slog.String("user_id", userID))
		return nil, domain.ErrSelfApproval
	}

	now := s.Now()
	if err := s.voucherRepo.UpdateVoucherStatus(ctx, voucherID, voucher.Status, next, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to approve voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}

	voucher.Status = next
	voucher.ApprovedBy = &userID
	voucher.ApprovedAt = &now
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = userID

	s.Metrics.RecordTransition(string(voucher.Type), string(domain.ActionApprove))
	s.LogInfo(ctx, "Voucher approved", slog.String("voucher_id", voucherID))
	return voucher, nil
}

func (s *voucherService) PostVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error) {
	voucher, _, err := s.transition(ctx, voucherID, domain.ActionPost)
	if err != nil {
		return nil, err
	}
	if err := VerifySystemLines(*voucher); err != nil {
		s.LogError(ctx, err, "Stored voucher violates system line invariants", slog.String("voucher_id", voucherID))
		return nil, err
	}

	// Accounts may have been deactivated since approval.
	accounts, err := s.validator.ValidateAccounts(ctx, *voucher)
	if err != nil {
		s.LogRejection(ctx, err, "Voucher accounts rejected on post", slog.String("voucher_id", voucherID))
		return nil, err
	}

	balanceChanges, err := accounting.CalculateBalanceChanges(voucher.Lines, accounts)
	if err != nil {
		s.LogError(ctx, err, "Failed to calculate balance changes", slog.String("voucher_id", voucherID))
		return nil, err
	}

	posted, err := s.voucherRepo.PostVoucher(ctx, *voucher, balanceChanges, userID, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to post voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}

	s.Metrics.RecordTransition(string(posted.Type), string(domain.ActionPost))
	s.Metrics.RecordPosted(string(posted.Type), posted.Amount.InexactFloat64())
	s.LogInfo(ctx, "Voucher posted",
		slog.String("voucher_id", voucherID),
		slog.Int("accounts_touched", len(balanceChanges)))
	return posted, nil
}

func (s *voucherService) ReverseVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error) {
	original, err := s.GetVoucher(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if err := original.Status.EnsureReversible(); err != nil {
		s.LogRejection(ctx, err, "Voucher reversal rejected", slog.String("voucher_id", voucherID))
		return nil, err
	}
	if original.IsReversal() {
		err := fmt.Errorf("%w: %s is itself a reversal", domain.ErrReversalNotAllowed, original.VoucherNumber)
		s.LogRejection(ctx, err, "Voucher reversal rejected", slog.String("voucher_id", voucherID))
		return nil, err
	}

	existing, err := s.voucherRepo.FindReversalOf(ctx, voucherID)
	switch {
	case err == nil:
		err := fmt.Errorf("%w by %s", domain.ErrAlreadyReversed, existing.VoucherNumber)
		s.LogRejection(ctx, err, "Voucher reversal rejected", slog.String("voucher_id", voucherID))
		return nil, err
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to check for existing reversal", slog.String("voucher_id", voucherID))
		return nil, err
	}

	now := s.Now()
	originalID := original.VoucherID
	reversal := domain.Voucher{
		VoucherID:    uuid.NewString(),
		Type:         domain.JournalEntry,
		Date:         domain.CalendarDate(now),
		AccountID:    original.AccountID,
		Description:  fmt.Sprintf("Reversal of %s", original.VoucherNumber),
		Status:       domain.StatusDraft,
		Lines:        reverseLines(original.Lines),
		ReversalOfID: &originalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.prepare(ctx, &reversal); err != nil {
		s.LogRejection(ctx, err, "Reversal voucher rejected", slog.String("voucher_id", voucherID))
		return nil, err
	}

	number, err := s.voucherRepo.CreateVoucher(ctx, reversal)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, domain.ErrAlreadyReversed
		}
		s.LogError(ctx, err, "Failed to save reversal voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}
	reversal.VoucherNumber = number

	s.Metrics.RecordCreated(string(reversal.Type))
	s.Metrics.RecordTransition(string(original.Type), string(domain.ActionReverse))
	s.LogInfo(ctx, "Reversal voucher created",
		slog.String("original_voucher_id", voucherID),
		slog.String("reversal_voucher_id", reversal.VoucherID),
		slog.String("voucher_number", number))
	return &reversal, nil
}

// reverseLines mirrors every line of a posted voucher. Generated lines become
// ordinary journal lines of the reversal.
func reverseLines(lines []domain.VoucherLine) []domain.VoucherLine {
	reversed := make([]domain.VoucherLine, len(lines))
	for i, l := range lines {
		reversed[i] = domain.VoucherLine{
			LineNo:      i + 1,
			AccountID:   l.AccountID,
			Debit:       l.Credit,
			Credit:      l.Debit,
			Description: "Reversal: " + strings.TrimPrefix(l.Description, domain.SystemLineTag+" "),
			Origin:      domain.OriginReversal,
		}
	}
	return reversed
}
