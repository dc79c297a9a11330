package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-repositories"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

// ListProjects returns projects newest-updated first. An unrecognised
// status filter is ignored rather than rejected.
func (s *ProjectService) ListProjects(ctx context.Context, statusFilter string) ([]dtos.ProjectSummary, error) {
	var filter *models.ProjectStatus
	if st, ok := models.ParseProjectStatus(strings.TrimSpace(statusFilter)); ok {
		filter = &st
	}

	projects, err := s.store.Projects().List(ctx, filter)
	if err != nil {
		return nil, storageFailure("Failed to list projects", err)
	}

	out := make([]dtos.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summary, err := s.summarize(ctx, p)
		if err != nil {
			return nil, storageFailure("Failed to list projects", err)
		}
		if summary != nil {
			out = append(out, *summary)
		}
	}
	return out, nil
}

func (s *ProjectService) summarize(ctx context.Context, p *models.Project) (*dtos.ProjectSummary, error) {
	prop, err := s.store.Properties().GetByID(ctx, p.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		utils.Logger.WithField("projectID", p.ID).Warn("Project references a missing property; skipping")
		return nil, nil
	}
	summary := &dtos.ProjectSummary{
		ID:        p.ID.String(),
		Status:    p.Status,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Property:  dtos.NewPropertySummary(prop),
	}
	listing, err := s.store.Listings().GetByPropertyID(ctx, prop.ID)
	if err != nil {
		return nil, err
	}
	if listing != nil {
		summary.Listing = &dtos.ListingSummary{ID: listing.ID.String(), Slug: listing.Slug, Status: listing.Status}
	}
	return summary, nil
}

// GetProject loads everything the operator detail page shows.
func (s *ProjectService) GetProject(ctx context.Context, projectID uuid.UUID) (*dtos.ProjectDetail, error) {
	detail, err := s.loadDetail(ctx, projectID)
	if err != nil {
		return nil, storageFailure("Failed to load project", err)
	}
	return detail, nil
}

func (s *ProjectService) loadDetail(ctx context.Context, projectID uuid.UUID) (*dtos.ProjectDetail, error) {
	proj, err := s.store.Projects().GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if proj == nil {
		return nil, projectNotFound(projectID)
	}
	prop, err := s.store.Properties().GetByID(ctx, proj.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, utils.NotFound("Property not found", nil)
	}
	listing, err := s.store.Listings().GetByPropertyID(ctx, prop.ID)
	if err != nil {
		return nil, err
	}

	apps, err := s.store.Applications().ListByProject(ctx, proj.ID)
	if err != nil {
		return nil, err
	}
	views := make([]dtos.ApplicationView, 0, len(apps))
	for _, a := range apps {
		view := dtos.ApplicationView{
			ID:        a.ID.String(),
			Status:    a.Status,
			Message:   a.Message,
			CreatedAt: a.CreatedAt,
		}
		fv, err := s.freelancerView(ctx, a.FreelancerID)
		if err != nil {
			return nil, err
		}
		view.Freelancer = fv
		views = append(views, view)
	}

	assignments, err := s.store.Assignments().ListByProject(ctx, proj.ID)
	if err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []*models.Assignment{}
	}
	events, err := s.store.EventLogs().ListByEntity(ctx, models.EntityProject, proj.ID)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []*models.EventLog{}
	}

	return &dtos.ProjectDetail{
		Project:      proj,
		Property:     prop,
		Listing:      listing,
		Applications: views,
		Assignments:  assignments,
		Events:       events,
	}, nil
}

func (s *ProjectService) freelancerView(ctx context.Context, profileID uuid.UUID) (dtos.FreelancerView, error) {
	fv := dtos.FreelancerView{ProfileID: profileID.String()}
	profile, err := s.store.FreelancerProfiles().GetByID(ctx, profileID)
	if err != nil || profile == nil {
		return fv, err
	}
	fv.UserID = profile.UserID.String()
	user, err := s.store.Users().GetByID(ctx, profile.UserID)
	if err != nil || user == nil {
		return fv, err
	}
	fv.Name = user.Name
	fv.Email = user.Email
	return fv, nil
}

// UpdateNotes replaces the project notes; blank clears them.
func (s *ProjectService) UpdateNotes(ctx context.Context, actorID string, projectID uuid.UUID, notes *string) (*models.Project, error) {
	var cleaned *string
	if notes != nil {
		cleaned = utils.NilIfBlank(*notes)
	}

	var out *models.Project
	err := s.store.RunInTx(ctx, func(tx repositories.Store) error {
		err := tx.Projects().UpdateWithRetry(ctx, projectID, func(p *models.Project) error {
			p.Notes = cleaned
			out = p
			return nil
		})
		if err != nil {
			return err
		}
		return appendEvent(ctx, tx, models.EntityProject, projectID, models.EventProjectNotesUpdated, actorID,
			map[string]any{"cleared": cleaned == nil})
	})
	if err != nil {
		return nil, storageFailure("Failed to update notes", err)
	}
	return out, nil
}

// UpdateProperty applies a partial edit of the owner's submission.
func (s *ProjectService) UpdateProperty(ctx context.Context, actorID string, propertyID uuid.UUID, req dtos.UpdatePropertyRequest) (*models.Property, error) {
	changed := []string{}
	var out *models.Property
	err := s.store.RunInTx(ctx, func(tx repositories.Store) error {
		err := tx.Properties().UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
			changed = changed[:0]
			if req.Title != nil {
				p.Title = strings.TrimSpace(*req.Title)
				changed = append(changed, "title")
			}
			if req.Description != nil {
				p.Description = strings.TrimSpace(*req.Description)
				changed = append(changed, "description")
			}
			if req.Address != nil {
				p.Address = strings.TrimSpace(*req.Address)
				changed = append(changed, "address")
			}
			if req.BaseNightlyRate != nil {
				p.BaseNightlyRate = *req.BaseNightlyRate
				changed = append(changed, "baseNightlyRate")
			}
			if req.MaxGuests != nil {
				p.MaxGuests = *req.MaxGuests
				changed = append(changed, "maxGuests")
			}
			out = p
			return nil
		})
		if err != nil {
			return err
		}
		return appendEvent(ctx, tx, models.EntityProperty, propertyID, models.EventPropertyUpdated, actorID,
			map[string]any{"fields": changed})
	})
	if err != nil {
		return nil, storageFailure("Failed to update property", err)
	}
	return out, nil
}
