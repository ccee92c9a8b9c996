package services

import (
	"context"
	"fmt"
	"strings"
	"sway-pr/internal/models"
)

type FollowUpStore interface {
	Save(ctx context.Context, email *models.FollowUpEmail) error
	GetByID(ctx context.Context, id int64) (*models.FollowUpEmail, error)
}

type StaffLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Staff, error)
}

// FollowUpService drafts follow-up emails from press releases.
type FollowUpService struct {
	followUps     FollowUpStore
	pressReleases DocumentStore
	staff         StaffLookup
	contacts      ContactStore
}

func NewFollowUpService(followUps FollowUpStore, pressReleases DocumentStore, staff StaffLookup, contacts ContactStore) *FollowUpService {
	return &FollowUpService{followUps: followUps, pressReleases: pressReleases, staff: staff, contacts: contacts}
}

// PrepareFollowUp creates a draft addressed to the outlets and cities of
// the selected batches and signed by the selected staff member.
func (s *FollowUpService) PrepareFollowUp(ctx context.Context, req models.PrepareFollowUpRequest) (*models.PrepareFollowUpResponse, error) {
	release, err := s.pressReleases.GetByID(ctx, req.PressReleaseID)
	if err != nil {
		return nil, storageFailure(err)
	}
	if release == nil {
		return nil, models.NewError(models.KindNotFound, "press release %d not found", req.PressReleaseID)
	}

	var sender *models.Staff
	if req.StaffID > 0 {
		sender, err = s.staff.GetByID(ctx, req.StaffID)
		if err != nil {
			return nil, storageFailure(err)
		}
		if sender == nil {
			return nil, models.NewError(models.KindNotFound, "staff member %d not found", req.StaffID)
		}
	}

	outlets, cities, err := s.audience(ctx, req.UploadIDs)
	if err != nil {
		return nil, err
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "Follow-up: " + release.Name
	}

	var body strings.Builder
	body.WriteString("Hello,\n\nI wanted to follow up on the press release we sent recently")
	fmt.Fprintf(&body, ", \"%s\".\n\n", release.Name)
	body.WriteString(release.Content)
	body.WriteString("\n\nPlease let me know if you would like any further information.\n\nBest regards,\n")
	if sender != nil {
		fmt.Fprintf(&body, "%s\n%s\n", sender.StaffName, sender.StaffEmail)
	}

	email := &models.FollowUpEmail{
		Name:       subject,
		Content:    body.String(),
		OutletName: strings.Join(outlets, ", "),
		City:       strings.Join(cities, ", "),
	}
	if err := s.followUps.Save(ctx, email); err != nil {
		return nil, storageFailure(err)
	}

	return &models.PrepareFollowUpResponse{
		ID:          email.ID,
		RedirectURL: fmt.Sprintf("/follow-up-emails/%d", email.ID),
	}, nil
}

func (s *FollowUpService) audience(ctx context.Context, uploadIDs []int64) ([]string, []string, error) {
	outlets := newOrderedSet()
	cities := newOrderedSet()
	for _, id := range uploadIDs {
		uploadID := id
		o, err := s.contacts.DistinctValues(ctx, models.ContactTables, models.FieldOutletName, &uploadID)
		if err != nil {
			return nil, nil, storageFailure(err)
		}
		outlets.add(o...)
		c, err := s.contacts.DistinctValues(ctx, models.ContactTables, models.FieldCity, &uploadID)
		if err != nil {
			return nil, nil, storageFailure(err)
		}
		cities.add(c...)
	}
	return outlets.values, cities.values, nil
}

type orderedSet struct {
	seen   map[string]bool
	values []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]bool{}, values: []string{}}
}

func (s *orderedSet) add(values ...string) {
	for _, v := range values {
		if !s.seen[v] {
			s.seen[v] = true
			s.values = append(s.values, v)
		}
	}
}
