package services

import (
	"context"
	"errors"
	"time"

	"dugun.link/configs/configslog"
	"dugun.link/models"
	"dugun.link/pkg/useragent"
	"dugun.link/repositories"

	"go.uber.org/zap"
)

const (
	maxUniqueURLLen = 64
	maxUserAgentLen = 1024
	maxIPLen        = 45
)

// ViewMeta public isteğin görüntüleme kaydına giren bilgileri.
type ViewMeta struct {
	IPAddress string
	UserAgent string
}

// PublicInvitation sayfanın çizilmesi için gereken her şeydir.
type PublicInvitation struct {
	Invitation *models.Invitation
	Template   *models.Template
	Galleries  []models.Gallery
}

type IPublicInvitationService interface {
	Resolve(ctx context.Context, uniqueURL string) (*models.Invitation, error)
	Render(ctx context.Context, uniqueURL string, meta ViewMeta) (*PublicInvitation, error)
}

type PublicInvitationService struct {
	invitations repositories.IInvitationRepository
	galleries   repositories.IGalleryRepository
	recorder    ViewRecorder
	now         func() time.Time
}

func NewPublicInvitationService(invitations repositories.IInvitationRepository, galleries repositories.IGalleryRepository, recorder ViewRecorder) *PublicInvitationService {
	return &PublicInvitationService{
		invitations: invitations,
		galleries:   galleries,
		recorder:    recorder,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ValidUniqueURL adresin biçimsel olarak geçerli olup olmadığını kontrol eder.
// Geçersiz adresler veritabanına hiç gitmeden bulunamadı olarak döner.
func ValidUniqueURL(s string) bool {
	if s == "" || len(s) > maxUniqueURLLen {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// Resolve yalnızca yayındaki davetiyeyi döndürür. Taslak, yayından kaldırılmış,
// bilinmeyen veya biçimsiz adreslerin hepsi ErrNotFound'dur.
func (s *PublicInvitationService) Resolve(ctx context.Context, uniqueURL string) (*models.Invitation, error) {
	if !ValidUniqueURL(uniqueURL) {
		return nil, ErrNotFound
	}
	invitation, err := s.invitations.FindPublishedByUniqueURL(ctx, uniqueURL)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("Public davetiye sorgulanamadı", zap.String("uniqueURL", uniqueURL), zap.Error(err))
		return nil, err
	}
	if !invitation.IsPublished() {
		return nil, ErrNotFound
	}
	return invitation, nil
}

// Render davetiyeyi tema ve sıralı galeriyle döndürür ve bir görüntüleme kaydeder.
func (s *PublicInvitationService) Render(ctx context.Context, uniqueURL string, meta ViewMeta) (*PublicInvitation, error) {
	invitation, err := s.Resolve(ctx, uniqueURL)
	if err != nil {
		return nil, err
	}
	galleries, err := s.galleries.FindByInvitationID(ctx, invitation.ID)
	if err != nil {
		return nil, err
	}
	s.recordView(invitation.ID, meta)
	return &PublicInvitation{Invitation: invitation, Template: invitation.Template, Galleries: galleries}, nil
}

func (s *PublicInvitationService) recordView(invitationID uint, meta ViewMeta) {
	defer func() {
		if rec := recover(); rec != nil {
			configslog.Log.Error("Görüntüleme kaydı başlatılamadı", zap.Uint("invitationID", invitationID), zap.Any("panic", rec))
		}
	}()
	if s.recorder == nil {
		return
	}
	device, browser := useragent.Parse(meta.UserAgent)
	s.recorder.Record(models.InvitationView{
		InvitationID: invitationID,
		IPAddress:    useragent.Truncate(meta.IPAddress, maxIPLen),
		UserAgent:    useragent.Truncate(meta.UserAgent, maxUserAgentLen),
		DeviceType:   device,
		Browser:      browser,
		ViewedAt:     s.now(),
	})
}
