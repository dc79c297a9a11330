package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	internal_utils "github.com/staynest/mono-repo/backend/services/marketplace-service/internal/utils"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-repositories"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

type FreelancerService struct {
	store repositories.Store
}

func NewFreelancerService(store repositories.Store) *FreelancerService {
	return &FreelancerService{store: store}
}

// ListOpenProjects is the freelancer board: projects waiting for a
// freelancer, newest first.
func (s *FreelancerService) ListOpenProjects(ctx context.Context) ([]dtos.OpenProject, error) {
	status := models.ProjectStatusWaitingFreelancer
	projects, err := s.store.Projects().List(ctx, &status)
	if err != nil {
		return nil, storageFailure("Failed to load projects", err)
	}

	out := make([]dtos.OpenProject, 0, len(projects))
	for _, p := range projects {
		prop, err := s.store.Properties().GetByID(ctx, p.PropertyID)
		if err != nil {
			return nil, storageFailure("Failed to load projects", err)
		}
		if prop == nil {
			continue
		}
		summary := dtos.NewPropertySummary(prop)
		// Owners' names stay private on the public board.
		summary.OwnerName = ""
		out = append(out, dtos.OpenProject{
			ID:        p.ID.String(),
			Status:    p.Status,
			CreatedAt: p.CreatedAt,
			Property:  summary,
		})
	}
	return out, nil
}

// Apply records an APPLIED application for the freelancer identified by
// email, creating the user and profile on first contact. The project
// itself is never modified.
func (s *FreelancerService) Apply(ctx context.Context, projectID uuid.UUID, req dtos.ApplyRequest) (*models.FreelancerApplication, error) {
	email := utils.NormalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)

	var out *models.FreelancerApplication
	err := s.store.RunInTx(ctx, func(tx repositories.Store) error {
		proj, err := tx.Projects().GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if proj == nil || !proj.IsOpenForApplications() {
			return utils.Conflict(internal_utils.ErrCodeProjectNotOpen, constants.MsgProjectNotOpen, internal_utils.ErrProjectNotOpen)
		}

		user, err := findOrCreateFreelancerUser(ctx, tx, email, name)
		if err != nil {
			return err
		}
		profile, err := findOrCreateProfile(ctx, tx, user.ID)
		if err != nil {
			return err
		}

		dup, err := tx.Applications().GetByProjectAndFreelancer(ctx, proj.ID, profile.ID)
		if err != nil {
			return err
		}
		if dup != nil {
			return alreadyApplied()
		}

		app := &models.FreelancerApplication{
			ID:           uuid.New(),
			ProjectID:    proj.ID,
			FreelancerID: profile.ID,
			Message:      cleanOptional(req.Message),
			Status:       models.ApplicationStatusApplied,
		}
		if err := tx.Applications().Create(ctx, app); err != nil {
			if c, ok := repositories.IsUniqueViolation(err); ok && c == repositories.ConstraintApplicationsFreelancer {
				return alreadyApplied()
			}
			return err
		}
		out = app
		return nil
	})
	if err != nil {
		return nil, storageFailure(constants.MsgSubmitFailed, err)
	}

	utils.Logger.WithFields(logrus.Fields{
		"projectID":     projectID,
		"applicationID": out.ID,
	}).Info("Freelancer applied")
	return out, nil
}

func alreadyApplied() error {
	return utils.Conflict(internal_utils.ErrCodeAlreadyApplied, constants.MsgAlreadyApplied, internal_utils.ErrAlreadyApplied)
}

// findOrCreateFreelancerUser matches on the normalized email. An existing
// account keeps its role and name.
func findOrCreateFreelancerUser(ctx context.Context, tx repositories.Store, email, name string) (*models.User, error) {
	user, err := tx.Users().GetByEmail(ctx, email)
	if err != nil || user != nil {
		return user, err
	}
	user = &models.User{
		ID:    uuid.New(),
		Email: email,
		Name:  utils.NilIfBlank(name),
		Role:  models.RoleFreelancer,
	}
	if err := tx.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func findOrCreateProfile(ctx context.Context, tx repositories.Store, userID uuid.UUID) (*models.FreelancerProfile, error) {
	profile, err := tx.FreelancerProfiles().GetByUserID(ctx, userID)
	if err != nil || profile != nil {
		return profile, err
	}
	profile = &models.FreelancerProfile{
		ID:     uuid.New(),
		UserID: userID,
		Status: models.FreelancerProfileStatusActive,
	}
	if err := tx.FreelancerProfiles().Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
