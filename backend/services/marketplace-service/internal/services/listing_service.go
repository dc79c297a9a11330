package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	internal_utils "github.com/staynest/mono-repo/backend/services/marketplace-service/internal/utils"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-repositories"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

// ListingService backs the operator listing builder and the public stays
// API. Only PUBLISHED listings ever leave through the stays methods.
type ListingService struct {
	store  repositories.Store
	photos PhotoStore
	now    func() time.Time
}

func NewListingService(store repositories.Store, photos PhotoStore) *ListingService {
	return &ListingService{store: store, photos: photos, now: time.Now}
}

// SaveListing creates the DRAFT listing for the project's property or
// updates the existing one. A non-empty guestPhotos upload replaces the
// listing's guest photos.
func (s *ListingService) SaveListing(
	ctx context.Context,
	actorID string,
	projectID uuid.UUID,
	req dtos.SaveListingRequest,
	guestPhotos []dtos.UploadedPhoto,
) (*models.Listing, error) {
	title := strings.TrimSpace(req.Title)
	slug := internal_utils.NormalizeSlug(req.Slug)
	if title == "" || strings.Trim(slug, "-") == "" {
		return nil, utils.Validation("Title and slug are required", nil)
	}

	photos := nonEmptyPhotos(guestPhotos)
	if totalPhotoBytes(photos) > utils.MaxPhotoUploadBytes {
		return nil, invalid(constants.MsgPhotosTooLarge, internal_utils.ErrPhotosTooLarge)
	}

	proj, err := s.store.Projects().GetByID(ctx, projectID)
	if err != nil {
		return nil, storageFailure("Failed to save listing", err)
	}
	if proj == nil {
		return nil, projectNotFound(projectID)
	}
	existing, err := s.store.Listings().GetByPropertyID(ctx, proj.PropertyID)
	if err != nil {
		return nil, storageFailure("Failed to save listing", err)
	}

	listingID := uuid.New()
	if existing != nil {
		listingID = existing.ID
	}

	var photoURLs []string
	for i, p := range photos {
		url, err := s.photos.Store(ctx, p.Data, internal_utils.GuestPhotoName(listingID, i, p.Filename))
		if err != nil {
			return nil, utils.Internal(constants.MsgPhotoStorageFailed, err)
		}
		photoURLs = append(photoURLs, url)
	}

	maxGuests := req.MaxGuests
	if maxGuests <= 0 {
		maxGuests = constants.DefaultListingMaxGuest
	}

	var out *models.Listing
	err = s.store.RunInTx(ctx, func(tx repositories.Store) error {
		current, err := tx.Listings().LockByPropertyID(ctx, proj.PropertyID)
		if err != nil {
			return err
		}

		listing := current
		if listing == nil {
			listing = &models.Listing{
				ID:          listingID,
				PropertyID:  proj.PropertyID,
				Status:      models.ListingStatusDraft,
				GuestPhotos: []string{},
			}
		}
		listing.Title = title
		listing.Slug = slug
		listing.Description = cleanOptional(req.Description)
		listing.NightlyRate = req.NightlyRate
		listing.CleaningFee = req.CleaningFee
		listing.MaxGuests = maxGuests
		if len(photoURLs) > 0 {
			listing.GuestPhotos = photoURLs
		}

		if current == nil {
			err = tx.Listings().Create(ctx, listing)
		} else {
			err = tx.Listings().Update(ctx, listing)
		}
		if err != nil {
			return listingWriteError(err)
		}

		if err := appendEvent(ctx, tx, models.EntityListing, listing.ID, models.EventListingSaved, actorID,
			map[string]any{"projectId": proj.ID, "slug": listing.Slug, "created": current == nil}); err != nil {
			return err
		}
		out = listing
		return nil
	})
	if err != nil {
		return nil, storageFailure("Failed to save listing", err)
	}

	utils.Logger.WithFields(logrus.Fields{
		"projectID": projectID,
		"listingID": out.ID,
		"slug":      out.Slug,
	}).Info("Listing saved")
	return out, nil
}

func listingWriteError(err error) error {
	constraint, ok := repositories.IsUniqueViolation(err)
	if !ok {
		return err
	}
	if constraint == repositories.ConstraintListingsSlug {
		return utils.Conflict(internal_utils.ErrCodeSlugTaken, constants.MsgSlugTaken, internal_utils.ErrSlugTaken)
	}
	return utils.Conflict(utils.ErrCodeConflict, "A listing already exists for this property", err)
}

// ListPublishedStays returns the public collection, most recently
// published first.
func (s *ListingService) ListPublishedStays(ctx context.Context) ([]dtos.StaySummary, error) {
	listings, err := s.store.Listings().ListPublished(ctx)
	if err != nil {
		return nil, storageFailure("Failed to load stays", err)
	}

	out := make([]dtos.StaySummary, 0, len(listings))
	for _, l := range listings {
		prop, err := s.store.Properties().GetByID(ctx, l.PropertyID)
		if err != nil {
			return nil, storageFailure("Failed to load stays", err)
		}
		if prop == nil {
			continue
		}
		out = append(out, dtos.StaySummary{
			ID:          l.ID.String(),
			Slug:        l.Slug,
			Title:       l.Title,
			Description: l.Description,
			NightlyRate: l.NightlyRate,
			CleaningFee: l.CleaningFee,
			MaxGuests:   l.MaxGuests,
			Currency:    constants.Currency,
			PublishedAt: l.PublishedAt,
			HeroImage:   heroImage(l, prop),
			Property: dtos.StayProperty{
				ID:      prop.ID.String(),
				Title:   prop.Title,
				Address: prop.Address,
			},
		})
	}
	return out, nil
}

// GetStayBySlug returns a published stay. Drafts are indistinguishable
// from missing slugs.
func (s *ListingService) GetStayBySlug(ctx context.Context, slug string) (*dtos.StayDetail, error) {
	l, err := s.store.Listings().GetBySlug(ctx, internal_utils.NormalizeSlug(slug))
	if err != nil {
		return nil, storageFailure("Failed to load stay", err)
	}
	if l == nil || !l.IsPublished() {
		return nil, utils.NotFound(constants.MsgNotFound, nil)
	}
	prop, err := s.store.Properties().GetByID(ctx, l.PropertyID)
	if err != nil {
		return nil, storageFailure("Failed to load stay", err)
	}
	if prop == nil {
		return nil, utils.NotFound(constants.MsgNotFound, nil)
	}

	photos := make([]string, 0, len(l.GuestPhotos)+len(prop.Photos))
	photos = append(photos, l.GuestPhotos...)
	photos = append(photos, prop.Photos...)

	return &dtos.StayDetail{
		ID:          l.ID.String(),
		Slug:        l.Slug,
		Title:       l.Title,
		Description: l.Description,
		NightlyRate: l.NightlyRate,
		CleaningFee: l.CleaningFee,
		MaxGuests:   l.MaxGuests,
		Currency:    constants.Currency,
		PublishedAt: l.PublishedAt,
		Photos:      photos,
		Property: dtos.StayProperty{
			ID:         prop.ID.String(),
			Title:      prop.Title,
			Address:    prop.Address,
			OwnerName:  prop.OwnerName,
			OwnerEmail: prop.OwnerEmail,
		},
	}, nil
}

func heroImage(l *models.Listing, prop *models.Property) *string {
	if len(l.GuestPhotos) > 0 {
		return utils.Ptr(l.GuestPhotos[0])
	}
	if len(prop.Photos) > 0 {
		return utils.Ptr(prop.Photos[0])
	}
	return nil
}

func nonEmptyPhotos(in []dtos.UploadedPhoto) []dtos.UploadedPhoto {
	out := make([]dtos.UploadedPhoto, 0, len(in))
	for _, p := range in {
		if len(p.Data) > 0 {
			out = append(out, p)
		}
	}
	return out
}

func totalPhotoBytes(photos []dtos.UploadedPhoto) int {
	total := 0
	for _, p := range photos {
		total += len(p.Data)
	}
	return total
}

func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	return utils.NilIfBlank(strings.TrimSpace(*s))
}
