package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"reviewpulse/internal/models/db_models"
	"reviewpulse/internal/repositories"
	"reviewpulse/pkg/metrics"
	"reviewpulse/pkg/utils"
)

type IssueLinkRequest struct {
	OrderID       string
	ProductID     string
	BrandID       string
	ProductName   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

type LinkServiceInterface interface {
	// Issue persists a single-use link and sends the invitation email.
	// The email send is best-effort: a failure is logged, never surfaced.
	Issue(ctx context.Context, req IssueLinkRequest) (string, error)
	// Resolve classifies a token without mutating it.
	Resolve(ctx context.Context, token string) (*db_models.ReviewLink, error)
	// Consume re-validates and flips used exactly once; a concurrent loser
	// gets ErrLinkAlreadyUsed.
	Consume(ctx context.Context, token string) (*db_models.ReviewLink, error)
}

type LinkService struct {
	links   repositories.LinkRepositoryInterface
	mail    IMailService
	baseURL string
	linkTTL time.Duration
	logger  *zap.SugaredLogger
}

func NewLinkService(
	links repositories.LinkRepositoryInterface,
	mail IMailService,
	baseURL string,
	linkTTL time.Duration,
	logger *zap.SugaredLogger,
) LinkServiceInterface {
	return &LinkService{
		links:   links,
		mail:    mail,
		baseURL: baseURL,
		linkTTL: linkTTL,
		logger:  logger,
	}
}

func (s *LinkService) Issue(ctx context.Context, req IssueLinkRequest) (string, error) {
	if req.CustomerEmail == "" || req.OrderID == "" || req.ProductID == "" || req.BrandID == "" {
		return "", fmt.Errorf("%w: customerEmail, orderId, productId, and brandId are required", utils.ErrValidation)
	}

	token, err := utils.GenerateSecureToken(16)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	link := &db_models.ReviewLink{
		Token:         token,
		OrderID:       req.OrderID,
		ProductID:     req.ProductID,
		BrandID:       req.BrandID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Used:          false,
		ExpiresAt:     time.Now().Add(s.linkTTL).Unix(),
	}

	if err := s.links.CreateLink(ctx, link); err != nil {
		return "", err
	}
	metrics.LinksIssued.Inc()

	reviewURL := fmt.Sprintf("%s/review/%s", strings.TrimRight(s.baseURL, "/"), token)
	if err := s.mail.SendReviewInvitation(req.CustomerEmail, req.CustomerName, req.ProductName, reviewURL); err != nil {
		// Token creation and invitation delivery are not transactional; the
		// link stays valid and the caller still gets the token.
		s.logger.Warnw("invitation email failed",
			"token", token,
			"customer_email", req.CustomerEmail,
			"error", err,
		)
	}

	return token, nil
}

func (s *LinkService) Resolve(ctx context.Context, token string) (*db_models.ReviewLink, error) {
	link, err := s.links.GetLinkByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, utils.ErrLinkNotFound
	}
	if link.Used {
		return nil, utils.ErrLinkAlreadyUsed
	}
	if link.ExpiresAt > 0 && time.Now().Unix() >= link.ExpiresAt {
		return nil, utils.ErrLinkExpired
	}
	return link, nil
}

func (s *LinkService) Consume(ctx context.Context, token string) (*db_models.ReviewLink, error) {
	link, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	ok, err := s.links.ConsumeIfUnused(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race to a concurrent submission.
		return nil, utils.ErrLinkAlreadyUsed
	}
	return link, nil
}
