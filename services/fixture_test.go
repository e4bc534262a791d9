package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"dugun.link/database/dbtest"
	"dugun.link/models"
	"dugun.link/policies"
	"dugun.link/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db  *gorm.DB
	ctx context.Context

	invitationRepo repositories.IInvitationRepository
	galleryRepo    repositories.IGalleryRepository
	guestRepo      repositories.IGuestRepository
	rsvpRepo       repositories.IRsvpRepository
	viewRepo       repositories.IInvitationViewRepository
	templateRepo   repositories.ITemplateRepository
	userRepo       repositories.IUserRepository

	auth        IAuthService
	templates   ITemplateService
	invitations *InvitationService
	galleries   IGalleryService
	guests      IGuestService
	recorder    *AsyncViewRecorder
	public      *PublicInvitationService
	rsvps       IRsvpService
	statistics  *StatisticsService

	template *models.Template
}

var userSeq atomic.Int64

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	gate := policies.NewGate()

	f := &fixture{
		db:             db,
		ctx:            context.Background(),
		invitationRepo: repositories.NewInvitationRepository(db),
		galleryRepo:    repositories.NewGalleryRepository(db),
		guestRepo:      repositories.NewGuestRepository(db),
		rsvpRepo:       repositories.NewRsvpRepository(db),
		viewRepo:       repositories.NewInvitationViewRepository(db),
		templateRepo:   repositories.NewTemplateRepository(db),
		userRepo:       repositories.NewUserRepository(db),
	}
	f.auth = NewAuthService(f.userRepo)
	f.templates = NewTemplateService(f.templateRepo)
	f.invitations = NewInvitationService(db, f.invitationRepo, f.templates, gate)
	f.galleries = NewGalleryService(f.galleryRepo, f.invitationRepo, gate)
	f.guests = NewGuestService(db, f.guestRepo, f.invitationRepo, gate)
	f.recorder = NewAsyncViewRecorder(f.viewRepo, 64)
	f.public = NewPublicInvitationService(f.invitationRepo, f.galleryRepo, f.recorder)
	f.rsvps = NewRsvpService(f.rsvpRepo, f.public, f.invitationRepo, gate)
	f.statistics = NewStatisticsService(f.viewRepo, f.rsvpRepo, f.guestRepo, f.invitationRepo, gate)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = f.recorder.Close(ctx)
	})

	f.template = &models.Template{Name: "klasik", HTMLPath: "/static/templates/klasik/index.html", IsActive: true}
	require.NoError(t, f.templates.Create(f.ctx, f.template))
	return f
}

func (f *fixture) newUser(t *testing.T, active bool) *models.User {
	t.Helper()
	n := userSeq.Add(1)
	user, err := f.auth.Register(f.ctx, fmt.Sprintf("Kullanıcı %d", n), fmt.Sprintf("user%d@dugun.link", n), "sifre-123", active)
	require.NoError(t, err)
	return user
}

// deactivate hesabı pasife çeker (ödeme askıya alındı senaryosu).
func (f *fixture) deactivate(t *testing.T, user *models.User) {
	t.Helper()
	user.IsActive = false
	require.NoError(t, f.userRepo.Update(f.ctx, user))
}

func (f *fixture) newInvitation(t *testing.T, owner *models.User) *models.Invitation {
	t.Helper()
	inv, err := f.invitations.CreateInvitation(f.ctx, owner, InvitationInput{
		TemplateID: f.template.ID,
		GroomName:  "Ahmet",
		BrideName:  "Ayşe",
	})
	require.NoError(t, err)
	return inv
}

func (f *fixture) newPublished(t *testing.T, owner *models.User) *models.Invitation {
	t.Helper()
	inv, err := f.invitations.Publish(f.ctx, owner, f.newInvitation(t, owner).ID)
	require.NoError(t, err)
	require.NotNil(t, inv.UniqueURL)
	return inv
}

func (f *fixture) count(t *testing.T, model interface{}, invitationID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Where("invitation_id = ?", invitationID).Count(&n).Error)
	return n
}

// sequence sırayla verilen adresleri, bittiğinde sonuncuyu döndüren bir üretici.
func sequence(slugs ...string) SlugGenerator {
	var i atomic.Int64
	return func() string {
		n := int(i.Add(1)) - 1
		if n >= len(slugs) {
			n = len(slugs) - 1
		}
		return slugs[n]
	}
}

func contextWithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
