package services

import (
	"context"
	"testing"

	"dugun.link/models"
	"dugun.link/policies"
	"dugun.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orders(galleries []models.Gallery) map[uint]int {
	m := make(map[uint]int, len(galleries))
	for _, g := range galleries {
		m[g.ID] = g.Order
	}
	return m
}

func TestGalleryCreateAppends(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, true)
	inv := f.newInvitation(t, owner)

	a, err := f.galleries.Create(f.ctx, owner, inv.ID, GalleryInput{PhotoPath: "/a.jpg", Caption: "Nişan"})
	require.NoError(t, err)
	b, err := f.galleries.Create(f.ctx, owner, inv.ID, GalleryInput{PhotoPath: "/b.jpg"})
	require.NoError(t, err)
	assert.Equal(t, 1, a.Order)
	assert.Equal(t, 2, b.Order)

	_, err = f.galleries.Create(f.ctx, owner, inv.ID, GalleryInput{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "photo_path")
}

func TestGalleryReorderIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, true)
	inv := f.newInvitation(t, owner)
	other := f.newInvitation(t, owner)

	var ids []uint
	for _, p := range []string{"/1.jpg", "/2.jpg", "/3.jpg"} {
		g, err := f.galleries.Create(f.ctx, owner, inv.ID, GalleryInput{PhotoPath: p})
		require.NoError(t, err)
		ids = append(ids, g.ID)
	}
	foreign, err := f.galleries.Create(f.ctx, owner, other.ID, GalleryInput{PhotoPath: "/x.jpg"})
	require.NoError(t, err)

	before, err := f.galleries.List(f.ctx, owner, inv.ID)
	require.NoError(t, err)

	invalid := [][]uint{
		{ids[0], ids[1]},
		{ids[0], ids[1], ids[1]},
		{ids[0], ids[1], foreign.ID},
		{ids[2], ids[1], ids[0], 999},
	}
	for _, in := range invalid {
		_, err := f.galleries.Reorder(f.ctx, owner, inv.ID, ReorderInput{IDs: in})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "%v", in)
	}
	after, err := f.galleries.List(f.ctx, owner, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, orders(before), orders(after))

	reordered, err := f.galleries.Reorder(f.ctx, owner, inv.ID, ReorderInput{IDs: []uint{ids[2], ids[0], ids[1]}})
	require.NoError(t, err)
	require.Len(t, reordered, 3)
	assert.Equal(t, []uint{ids[2], ids[0], ids[1]}, []uint{reordered[0].ID, reordered[1].ID, reordered[2].ID})
	assert.Equal(t, []int{1, 2, 3}, []int{reordered[0].Order, reordered[1].Order, reordered[2].Order})
}

// Servis doğrulaması atlandığında da repository yarım kalmış sıra bırakmaz.
func TestGalleryRepositoryReorderRollsBack(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, true)
	inv := f.newInvitation(t, owner)

	a, err := f.galleries.Create(f.ctx, owner, inv.ID, GalleryInput{PhotoPath: "/a.jpg"})
	require.NoError(t, err)
	b, err := f.galleries.Create(f.ctx, owner, inv.ID, GalleryInput{PhotoPath: "/b.jpg"})
	require.NoError(t, err)

	err = f.galleryRepo.Reorder(f.ctx, inv.ID, []uint{b.ID, a.ID, 12345})
	require.Error(t, err)

	current, err := f.galleryRepo.FindByInvitationID(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, map[uint]int{a.ID: 1, b.ID: 2}, orders(current))
}

func TestGalleryOwnershipThroughInvitation(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, true)
	stranger := f.newUser(t, true)
	inv := f.newInvitation(t, owner)
	g, err := f.galleries.Create(f.ctx, owner, inv.ID, GalleryInput{PhotoPath: "/a.jpg"})
	require.NoError(t, err)

	_, err = f.galleries.List(f.ctx, stranger, inv.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.galleries.Update(f.ctx, stranger, g.ID, GalleryInput{PhotoPath: "/hack.jpg"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, f.galleries.Delete(f.ctx, stranger, g.ID), ErrForbidden)
	_, err = f.galleries.Create(f.ctx, stranger, inv.ID, GalleryInput{PhotoPath: "/b.jpg"})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := f.galleries.Update(f.ctx, owner, g.ID, GalleryInput{PhotoPath: "/a2.jpg", Caption: "Düğün"})
	require.NoError(t, err)
	assert.Equal(t, "/a2.jpg", updated.PhotoPath)
	assert.Equal(t, 1, updated.Order)

	require.NoError(t, f.galleries.Delete(f.ctx, owner, g.ID))
	assert.ErrorIs(t, f.galleries.Delete(f.ctx, owner, g.ID), ErrNotFound)
}

// interleavingGalleryRepo ilk FindByID okumasından hemen sonra verilen işlemi çalıştırır.
type interleavingGalleryRepo struct {
	repositories.IGalleryRepository
	afterFirstRead func()
	fired          bool
}

func (r *interleavingGalleryRepo) FindByID(ctx context.Context, id uint) (*models.Gallery, error) {
	g, err := r.IGalleryRepository.FindByID(ctx, id)
	if err == nil && !r.fired {
		r.fired = true
		r.afterFirstRead()
	}
	return g, err
}

func TestGalleryUpdateKeepsConcurrentReorder(t *testing.T) {
	f := newFixture(t)
	owner := f.newUser(t, true)
	inv := f.newInvitation(t, owner)
	a, err := f.galleries.Create(f.ctx, owner, inv.ID, GalleryInput{PhotoPath: "/a.jpg"})
	require.NoError(t, err)
	b, err := f.galleries.Create(f.ctx, owner, inv.ID, GalleryInput{PhotoPath: "/b.jpg"})
	require.NoError(t, err)

	repo := &interleavingGalleryRepo{IGalleryRepository: f.galleryRepo}
	repo.afterFirstRead = func() {
		_, err := f.galleries.Reorder(f.ctx, owner, inv.ID, ReorderInput{IDs: []uint{b.ID, a.ID}})
		require.NoError(t, err)
	}
	racing := NewGalleryService(repo, f.invitationRepo, policies.NewGate())

	updated, err := racing.Update(f.ctx, owner, a.ID, GalleryInput{PhotoPath: "/a2.jpg", Caption: "Kına"})
	require.NoError(t, err)
	assert.Equal(t, "/a2.jpg", updated.PhotoPath)
	assert.Equal(t, 2, updated.Order)

	list, err := f.galleries.List(f.ctx, owner, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, map[uint]int{b.ID: 1, a.ID: 2}, orders(list))
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, "Kına", list[1].Caption)
}
