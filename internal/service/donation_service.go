package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
	"church-cms/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPurpose      = "General Offering"
	verificationFailure = "Payment verification failed"
)

var errGatewayUnreachable = errors.New("gateway unreachable")

// DonationConfig holds gateway-facing settings for the donation lifecycle.
type DonationConfig struct {
	Currency         string
	ReferencePrefix  string
	Title            string
	Description      string
	Logo             string
	WebhookSecret    string
	RequireSignature bool
}

// DonationServiceImpl implements ports.DonationService.
type DonationServiceImpl struct {
	repo    ports.DonationRepository
	gateway ports.PaymentGateway
	sigSvc  ports.SignatureService
	cfg     DonationConfig
	log     zerolog.Logger
	now     func() time.Time
}

// NewDonationService creates a new DonationServiceImpl.
func NewDonationService(
	repo ports.DonationRepository,
	gateway ports.PaymentGateway,
	sigSvc ports.SignatureService,
	cfg DonationConfig,
	log zerolog.Logger,
) *DonationServiceImpl {
	if cfg.Currency == "" {
		cfg.Currency = "NGN"
	}
	if cfg.ReferencePrefix == "" {
		cfg.ReferencePrefix = "hcm"
	}
	return &DonationServiceImpl{
		repo:    repo,
		gateway: gateway,
		sigSvc:  sigSvc,
		cfg:     cfg,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Initialize persists a pending donation, then asks the gateway for a hosted
// checkout link. The row exists before any gateway call.
func (s *DonationServiceImpl) Initialize(ctx context.Context, req ports.InitializeDonationRequest) (*ports.InitializeDonationResult, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	if !s.gateway.Configured() {
		return nil, apperror.ErrGatewayNotConfigured()
	}

	purpose := req.Purpose
	if purpose == "" {
		purpose = defaultPurpose
	}

	now := s.now()
	donation := &domain.Donation{
		ID:                   uuid.New(),
		TransactionReference: NewReference(s.cfg.ReferencePrefix, now),
		Amount:               req.Amount,
		Currency:             s.cfg.Currency,
		Donor:                domain.Donor{Email: strings.ToLower(req.Email), FullName: req.FullName},
		Purpose:              purpose,
		Message:              req.Message,
		IsRecurring:          req.IsRecurring,
		Status:               domain.DonationStatusPending,
		CreatedAt:            now,
	}
	if err := s.repo.Create(ctx, donation); err != nil {
		return nil, err
	}
	ref := donation.TransactionReference
	log := s.log.With().Str("tx_ref", ref).Logger()

	base := strings.TrimRight(req.BaseURL, "/")
	link, err := s.gateway.CreatePaymentLink(ctx, ports.PaymentLinkRequest{
		Reference:   ref,
		Amount:      donation.Amount,
		Currency:    donation.Currency,
		RedirectURL: fmt.Sprintf("%s/donate.html?tx_ref=%s&status=success", base, url.QueryEscape(ref)),
		Email:       donation.Donor.Email,
		Name:        donation.Donor.FullName,
		Title:       s.cfg.Title,
		Description: firstNonEmpty(req.Purpose, s.cfg.Description),
		Logo:        firstNonEmpty(s.cfg.Logo, base+"/images/logo.png"),
		Meta:        map[string]string{"purpose": purpose, "message": req.Message},
	})
	if err != nil {
		var gwErr *ports.GatewayError
		if errors.As(err, &gwErr) {
			log.Warn().Str("reason", gwErr.Message).Msg("Gateway rejected payment initialization")
			s.fail(ctx, log, ref, gwErr.Message)
			return nil, apperror.ErrPaymentInitFailed(gwErr.Message)
		}
		log.Error().Err(err).Msg("Gateway unreachable during payment initialization")
		s.fail(ctx, log, ref, "Payment initialization failed")
		return nil, apperror.ErrUpstream("Payment initialization failed", err)
	}

	log.Info().Str("amount", donation.Amount.String()).Str("currency", donation.Currency).Msg("Donation initialized")
	return &ports.InitializeDonationResult{PaymentLink: link.URL, TransactionReference: ref}, nil
}

// HandleWebhook authenticates a gateway event and settles the donation it
// names. Only the gateway's verification response decides the outcome.
func (s *DonationServiceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.cfg.WebhookSecret != "" {
		switch {
		case signature != "":
			if !s.sigSvc.Verify(s.cfg.WebhookSecret, string(payload), signature) {
				s.log.Warn().Msg("Webhook signature mismatch")
				return apperror.ErrInvalidSignature()
			}
		case s.cfg.RequireSignature:
			s.log.Warn().Msg("Webhook rejected: signature header missing")
			return apperror.ErrInvalidSignature()
		default:
			s.log.Warn().Msg("Webhook accepted without signature header")
		}
	}

	event, err := s.gateway.ParseEvent(payload)
	if err != nil {
		return apperror.Validation("Invalid webhook payload")
	}
	if event.Type != ports.GatewayEventChargeCompleted {
		s.log.Debug().Str("event", event.RawType).Msg("Webhook event ignored")
		return nil
	}

	log := s.log.With().Str("tx_ref", event.Reference).Str("payment_id", event.PaymentID).Logger()
	if event.Reference == "" || event.PaymentID == "" {
		log.Warn().Msg("Webhook event missing reference or payment id")
		return nil
	}

	donation, err := s.repo.GetByReference(ctx, event.Reference)
	if err != nil {
		return err
	}
	if donation == nil {
		log.Warn().Msg("Webhook for unknown donation")
		return nil
	}
	if donation.Status.IsTerminal() {
		log.Debug().Str("status", string(donation.Status)).Msg("Webhook for settled donation ignored")
		return nil
	}

	if !s.gateway.Configured() {
		// without keys verification cannot succeed; keep the row pending for a retry
		log.Error().Msg("Webhook received but payment gateway is not configured")
		return apperror.ErrGatewayNotConfigured()
	}

	if err := s.repo.AttachPaymentID(ctx, event.Reference, event.PaymentID); err != nil {
		return err
	}

	if _, err := s.settle(ctx, log, event.Reference, event.PaymentID); err != nil {
		if errors.Is(err, errGatewayUnreachable) {
			return apperror.ErrUpstream("Payment verification unavailable", err)
		}
		return err
	}
	return nil
}

// Verify is the polling path. Completed and failed donations return without a
// gateway call, as do pending ones the gateway has not yet reported.
func (s *DonationServiceImpl) Verify(ctx context.Context, reference string) (*domain.Donation, error) {
	donation, err := s.repo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, apperror.ErrNotFound("Donation")
	}
	if donation.Status.IsTerminal() || donation.PaymentID == nil || *donation.PaymentID == "" {
		return donation, nil
	}
	if !s.gateway.Configured() {
		return donation, nil
	}

	log := s.log.With().Str("tx_ref", reference).Str("payment_id", *donation.PaymentID).Logger()
	current, err := s.settle(ctx, log, reference, *donation.PaymentID)
	if errors.Is(err, errGatewayUnreachable) {
		// the donor sees pending and polls again
		return donation, nil
	}
	if err != nil {
		return nil, err
	}
	return current, nil
}

// settle verifies paymentID with the gateway and applies the resulting
// transition. A verification that cannot reach the gateway leaves the row
// pending and returns errGatewayUnreachable.
func (s *DonationServiceImpl) settle(ctx context.Context, log zerolog.Logger, reference, paymentID string) (*domain.Donation, error) {
	tx, err := s.gateway.VerifyTransaction(ctx, paymentID)
	if err != nil {
		var gwErr *ports.GatewayError
		if !errors.As(err, &gwErr) {
			log.Error().Err(err).Msg("Gateway verification unreachable")
			return nil, fmt.Errorf("%w: %w", errGatewayUnreachable, err)
		}
		return s.markFailed(ctx, log, reference, firstNonEmpty(gwErr.Message, verificationFailure))
	}

	switch {
	case !tx.Successful():
		return s.markFailed(ctx, log, reference, firstNonEmpty(tx.ProcessorResponse, verificationFailure))
	case tx.Reference != "" && tx.Reference != reference:
		log.Warn().Str("verified_ref", tx.Reference).Msg("Verified transaction belongs to another reference")
		return s.markFailed(ctx, log, reference, "Transaction reference mismatch")
	}

	current, applied, err := s.repo.MarkCompleted(ctx, reference, domain.VerifiedPayment{
		PaymentID:        paymentID,
		Amount:           tx.Amount,
		Currency:         firstNonEmpty(tx.Currency, s.cfg.Currency),
		PaymentMethod:    firstNonEmpty(tx.PaymentType, "unknown"),
		GatewayReference: tx.GatewayReference,
		VerifiedAt:       s.now(),
	})
	if err != nil {
		return nil, err
	}
	if applied {
		log.Info().Str("amount", tx.Amount.String()).Str("currency", tx.Currency).Msg("Donation completed")
	}
	return current, nil
}

func (s *DonationServiceImpl) markFailed(ctx context.Context, log zerolog.Logger, reference, reason string) (*domain.Donation, error) {
	current, applied, err := s.repo.MarkFailed(ctx, reference, reason)
	if err != nil {
		return nil, err
	}
	if applied {
		log.Warn().Str("reason", reason).Msg("Donation failed")
	}
	return current, nil
}

// fail records an initialization failure; a storage error here is logged
// because the caller already reports the gateway failure.
func (s *DonationServiceImpl) fail(ctx context.Context, log zerolog.Logger, reference, reason string) {
	if _, _, err := s.repo.MarkFailed(ctx, reference, reason); err != nil {
		log.Error().Err(err).Msg("Failed to record donation failure")
	}
}

// List returns donations newest first.
func (s *DonationServiceImpl) List(ctx context.Context, params ports.DonationListParams) ([]domain.Donation, int64, error) {
	return s.repo.List(ctx, params)
}

// Stats summarises donations by status and completed totals per currency.
func (s *DonationServiceImpl) Stats(ctx context.Context) (*domain.DonationStats, error) {
	return s.repo.GetStats(ctx)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
