package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	internal_utils "github.com/staynest/mono-repo/backend/services/marketplace-service/internal/utils"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-repositories"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

// ProjectService owns the project lifecycle and the operator's project
// administration. Every transition locks the project row (and the
// property row where both move) before checking its guard.
type ProjectService struct {
	store repositories.Store
	now   func() time.Time
}

func NewProjectService(store repositories.Store) *ProjectService {
	return &ProjectService{store: store, now: time.Now}
}

// Approve moves INTAKE → WAITING_FREELANCER and the property to APPROVED.
func (s *ProjectService) Approve(ctx context.Context, actorID string, projectID uuid.UUID) (*models.Project, error) {
	var out *models.Project
	err := s.store.RunInTx(ctx, func(tx repositories.Store) error {
		proj, prop, err := lockProjectAndProperty(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if !proj.CanApprove(prop) {
			return wrongStatus("approve", proj.Status)
		}

		if err := tx.Projects().UpdateStatus(ctx, proj.ID, models.ProjectStatusWaitingFreelancer); err != nil {
			return err
		}
		if err := tx.Properties().UpdateStatus(ctx, prop.ID, models.PropertyStatusApproved); err != nil {
			return err
		}
		if err := appendEvent(ctx, tx, models.EntityProject, proj.ID, models.EventProjectApproved, actorID,
			map[string]any{"propertyId": prop.ID}); err != nil {
			return err
		}

		proj.Status = models.ProjectStatusWaitingFreelancer
		out = proj
		return nil
	})
	if err != nil {
		return nil, storageFailure("Failed to approve project", err)
	}
	utils.Logger.WithField("projectID", projectID).Info("Project approved")
	return out, nil
}

// Reject keeps the project in INTAKE and marks its property REJECTED.
// Outside INTAKE nothing is written.
func (s *ProjectService) Reject(ctx context.Context, actorID string, projectID uuid.UUID) (*models.Project, error) {
	var out *models.Project
	err := s.store.RunInTx(ctx, func(tx repositories.Store) error {
		proj, prop, err := lockProjectAndProperty(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if !proj.CanReject() {
			return wrongStatus("reject", proj.Status)
		}

		if err := tx.Projects().UpdateStatus(ctx, proj.ID, models.ProjectStatusIntake); err != nil {
			return err
		}
		if err := tx.Properties().UpdateStatus(ctx, prop.ID, models.PropertyStatusRejected); err != nil {
			return err
		}
		if err := appendEvent(ctx, tx, models.EntityProject, proj.ID, models.EventProjectRejected, actorID,
			map[string]any{"propertyId": prop.ID}); err != nil {
			return err
		}

		out = proj
		return nil
	})
	if err != nil {
		return nil, storageFailure("Failed to reject project", err)
	}
	utils.Logger.WithField("projectID", projectID).Info("Project rejected")
	return out, nil
}

// Assign accepts one application, rejects its siblings, records the
// assignment and moves the project to ASSIGNED. Repeating the call for
// the application that already won returns the existing assignment.
func (s *ProjectService) Assign(ctx context.Context, actorID string, projectID, applicationID uuid.UUID) (*models.Assignment, error) {
	var out *models.Assignment
	err := s.store.RunInTx(ctx, func(tx repositories.Store) error {
		proj, err := tx.Projects().LockByID(ctx, projectID)
		if err != nil {
			return err
		}
		if proj == nil {
			return projectNotFound(projectID)
		}

		app, err := tx.Applications().GetByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if app == nil || app.ProjectID != proj.ID {
			return utils.NotFound("Application not found for this project", internal_utils.ErrApplicationMismatch)
		}

		if proj.Status == models.ProjectStatusAssigned && app.Status == models.ApplicationStatusAccepted {
			existing, err := findAssignment(ctx, tx, proj.ID, app.FreelancerID)
			if err != nil {
				return err
			}
			if existing != nil {
				out = existing
				return nil
			}
		}

		if !proj.CanAssign() {
			return wrongStatus("assign", proj.Status)
		}
		if app.Status != models.ApplicationStatusApplied {
			return utils.Conflict(utils.ErrCodeWrongStatus,
				fmt.Sprintf("Application is %s and cannot be accepted", app.Status), utils.ErrWrongStatus)
		}

		if _, err := tx.Applications().RejectAllForProject(ctx, proj.ID); err != nil {
			return err
		}
		if err := tx.Applications().UpdateStatus(ctx, app.ID, models.ApplicationStatusAccepted); err != nil {
			return err
		}
		assignment := &models.Assignment{
			ID:           uuid.New(),
			ProjectID:    proj.ID,
			FreelancerID: app.FreelancerID,
			Status:       models.AssignmentStatusAssigned,
		}
		if err := tx.Assignments().Create(ctx, assignment); err != nil {
			return err
		}
		if err := tx.Projects().UpdateStatus(ctx, proj.ID, models.ProjectStatusAssigned); err != nil {
			return err
		}
		if err := appendEvent(ctx, tx, models.EntityProject, proj.ID, models.EventFreelancerAssigned, actorID,
			map[string]any{"applicationId": app.ID, "freelancerId": app.FreelancerID}); err != nil {
			return err
		}

		out = assignment
		return nil
	})
	if err != nil {
		return nil, storageFailure("Failed to assign freelancer", err)
	}
	utils.Logger.WithFields(logrus.Fields{
		"projectID":     projectID,
		"applicationID": applicationID,
	}).Info("Freelancer assigned")
	return out, nil
}

// Publish makes the property's listing public and moves both the project
// and the property to LISTED. A listing must already exist.
func (s *ProjectService) Publish(ctx context.Context, actorID string, projectID uuid.UUID) (*models.Listing, error) {
	var out *models.Listing
	err := s.store.RunInTx(ctx, func(tx repositories.Store) error {
		proj, prop, err := lockProjectAndProperty(ctx, tx, projectID)
		if err != nil {
			return err
		}

		listing, err := tx.Listings().LockByPropertyID(ctx, prop.ID)
		if err != nil {
			return err
		}
		if listing == nil {
			return utils.Conflict(internal_utils.ErrCodeListingMissing, constants.MsgListingRequired, internal_utils.ErrListingMissing)
		}

		// Already live: keep the original publish time so the stays feed
		// order does not change.
		if listing.IsPublished() && proj.Status == models.ProjectStatusListed && prop.Status == models.PropertyStatusListed {
			out = listing
			return nil
		}

		now := s.now().UTC()
		if err := tx.Listings().MarkPublished(ctx, listing.ID, now); err != nil {
			return err
		}
		if err := tx.Projects().UpdateStatus(ctx, proj.ID, models.ProjectStatusListed); err != nil {
			return err
		}
		if err := tx.Properties().UpdateStatus(ctx, prop.ID, models.PropertyStatusListed); err != nil {
			return err
		}
		if err := appendEvent(ctx, tx, models.EntityListing, listing.ID, models.EventListingPublished, actorID,
			map[string]any{"projectId": proj.ID, "slug": listing.Slug}); err != nil {
			return err
		}

		listing.Status = models.ListingStatusPublished
		listing.PublishedAt = &now
		out = listing
		return nil
	})
	if err != nil {
		return nil, storageFailure("Failed to publish listing", err)
	}
	utils.Logger.WithFields(logrus.Fields{"projectID": projectID, "slug": out.Slug}).Info("Listing published")
	return out, nil
}

// SetStatus is the operator's manual override. It skips every lifecycle
// guard but only accepts members of the status set, and it is audited.
func (s *ProjectService) SetStatus(ctx context.Context, actorID string, projectID uuid.UUID, rawStatus string) (*models.Project, error) {
	status, ok := models.ParseProjectStatus(rawStatus)
	if !ok {
		return nil, utils.Validation(constants.MsgInvalidStatus, map[string]any{
			"status":  rawStatus,
			"allowed": models.AllProjectStatuses,
		})
	}

	var out *models.Project
	err := s.store.RunInTx(ctx, func(tx repositories.Store) error {
		proj, err := tx.Projects().LockByID(ctx, projectID)
		if err != nil {
			return err
		}
		if proj == nil {
			return projectNotFound(projectID)
		}

		from := proj.Status
		if err := tx.Projects().UpdateStatus(ctx, proj.ID, status); err != nil {
			return err
		}
		if err := appendEvent(ctx, tx, models.EntityProject, proj.ID, models.EventProjectStatusForced, actorID,
			map[string]any{"from": from, "to": status}); err != nil {
			return err
		}

		proj.Status = status
		out = proj
		return nil
	})
	if err != nil {
		return nil, storageFailure("Failed to update project status", err)
	}
	utils.Logger.WithFields(logrus.Fields{"projectID": projectID, "status": status}).Warn("Project status overridden")
	return out, nil
}

func lockProjectAndProperty(ctx context.Context, tx repositories.Store, projectID uuid.UUID) (*models.Project, *models.Property, error) {
	proj, err := tx.Projects().LockByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if proj == nil {
		return nil, nil, projectNotFound(projectID)
	}
	prop, err := tx.Properties().LockByID(ctx, proj.PropertyID)
	if err != nil {
		return nil, nil, err
	}
	if prop == nil {
		return nil, nil, utils.NotFound("Property not found", fmt.Errorf("property %s of project %s", proj.PropertyID, proj.ID))
	}
	return proj, prop, nil
}

func findAssignment(ctx context.Context, tx repositories.Store, projectID, freelancerID uuid.UUID) (*models.Assignment, error) {
	assignments, err := tx.Assignments().ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		if a.FreelancerID == freelancerID {
			return a, nil
		}
	}
	return nil, nil
}
