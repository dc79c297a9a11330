package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/config"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	internal_utils "github.com/staynest/mono-repo/backend/services/marketplace-service/internal/utils"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-repositories"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

// EmailValidator checks deliverability; utils.ValidateEmail in production.
type EmailValidator func(ctx context.Context, apiKey, email string, validateWithSendGrid bool) (bool, error)

type IntakeService struct {
	store         repositories.Store
	photos        PhotoStore
	now           func() time.Time
	validateEmail EmailValidator
	sendgridKey   string
	checkEmail    bool
}

func NewIntakeService(cfg *config.Config, store repositories.Store, photos PhotoStore) *IntakeService {
	return &IntakeService{
		store:         store,
		photos:        photos,
		now:           time.Now,
		validateEmail: utils.ValidateEmail,
		sendgridKey:   cfg.SendgridAPIKey,
		checkEmail:    cfg.LDFlag_ValidateEmailDeliverability,
	}
}

// Submit stores the owner's photos and creates the PENDING_REVIEW property
// with its INTAKE project in one transaction.
func (s *IntakeService) Submit(ctx context.Context, req dtos.OwnerSubmitRequest, uploads []dtos.UploadedPhoto) (*dtos.OwnerSubmitResponse, error) {
	photos := nonEmptyPhotos(uploads)
	if len(photos) == 0 {
		return nil, invalid(constants.MsgPhotoRequired, internal_utils.ErrNoPhotos)
	}
	if totalPhotoBytes(photos) > utils.MaxPhotoUploadBytes {
		return nil, invalid(constants.MsgPhotosTooLarge, internal_utils.ErrPhotosTooLarge)
	}

	email := utils.NormalizeEmail(req.OwnerEmail)
	if s.checkEmail {
		ok, err := s.validateEmail(ctx, s.sendgridKey, email, true)
		if err != nil {
			utils.Logger.WithError(err).Warn("Email deliverability check failed; accepting address")
		} else if !ok {
			return nil, invalid("Please enter a deliverable email address.", utils.ErrInvalidEmail)
		}
	}

	prefix := internal_utils.IntakePhotoPrefix(s.now())
	urls := make([]string, 0, len(photos))
	for i, p := range photos {
		url, err := s.photos.Store(ctx, p.Data, internal_utils.IntakePhotoName(prefix, i, p.Filename))
		if err != nil {
			return nil, utils.Internal(constants.MsgSubmitFailed, err)
		}
		urls = append(urls, url)
	}

	prop := &models.Property{
		ID:              uuid.New(),
		OwnerName:       strings.TrimSpace(req.OwnerName),
		OwnerEmail:      email,
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		Address:         strings.TrimSpace(req.Address),
		Photos:          urls,
		BaseNightlyRate: req.BaseNightlyRate,
		MaxGuests:       req.MaxGuests,
		Status:          models.PropertyStatusPendingReview,
	}
	proj := &models.Project{
		ID:         uuid.New(),
		PropertyID: prop.ID,
		Status:     models.ProjectStatusIntake,
	}

	err := s.store.RunInTx(ctx, func(tx repositories.Store) error {
		if err := tx.Properties().Create(ctx, prop); err != nil {
			return err
		}
		return tx.Projects().Create(ctx, proj)
	})
	if err != nil {
		return nil, storageFailure(constants.MsgSubmitFailed, err)
	}

	utils.Logger.WithFields(logrus.Fields{
		"propertyID": prop.ID,
		"projectID":  proj.ID,
		"photos":     len(urls),
	}).Info("Owner submission received")

	return &dtos.OwnerSubmitResponse{
		Success:    true,
		PropertyID: prop.ID.String(),
		ProjectID:  proj.ID.String(),
	}, nil
}
