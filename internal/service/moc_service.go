package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"brickvault/internal/domain"
	"brickvault/internal/port"
)

// MocService deletes MOCs and reclaims shared assets they orphan.
type MocService interface {
	DeleteMoc(ctx context.Context, mocID, ownerID uuid.UUID) error
}

type mocService struct {
	mocRepo     port.MocRepository
	fileRepo    port.MocFileRepository
	galleryRepo port.GalleryRepository
	dispatcher  port.TaskDispatcher
}

// NewMocService creates a new MocService implementation.
func NewMocService(
	mocRepo port.MocRepository,
	fileRepo port.MocFileRepository,
	galleryRepo port.GalleryRepository,
	dispatcher port.TaskDispatcher,
) MocService {
	return &mocService{
		mocRepo:     mocRepo,
		fileRepo:    fileRepo,
		galleryRepo: galleryRepo,
		dispatcher:  dispatcher,
	}
}

// DeleteMoc removes a MOC, its owned file records, and its gallery links,
// then deletes any gallery image the removal orphaned. Storage cleanup,
// cache invalidation, and search de-indexing run as async tasks; the
// database is authoritative and their failures never surface here.
func (s *mocService) DeleteMoc(ctx context.Context, mocID, ownerID uuid.UUID) error {
	if _, err := s.mocRepo.GetByIDAndOwner(ctx, mocID, ownerID); err != nil {
		if errors.Is(err, domain.ErrMocNotFound) {
			return err
		}
		return fmt.Errorf("%w: loading moc: %v", domain.ErrPersistence, err)
	}

	// Snapshot before any deletion: owned file keys for storage cleanup,
	// linked images for the orphan recompute.
	ownedFiles, err := s.fileRepo.ListByMoc(ctx, mocID)
	if err != nil {
		return fmt.Errorf("%w: listing owned files: %v", domain.ErrPersistence, err)
	}
	linkedImages, err := s.galleryRepo.ListLinkedImages(ctx, mocID)
	if err != nil {
		return fmt.Errorf("%w: listing gallery links: %v", domain.ErrPersistence, err)
	}

	// Deletion order is fixed so no row ever references a deleted row:
	// album links, image links, owned files, then the MOC itself.
	if err := s.galleryRepo.DeleteAlbumLinksByMoc(ctx, mocID); err != nil {
		return fmt.Errorf("%w: deleting album links: %v", domain.ErrPersistence, err)
	}
	if err := s.galleryRepo.DeleteMocLinks(ctx, mocID); err != nil {
		return fmt.Errorf("%w: deleting image links: %v", domain.ErrPersistence, err)
	}
	if err := s.fileRepo.DeleteByMoc(ctx, mocID); err != nil {
		return fmt.Errorf("%w: deleting owned files: %v", domain.ErrPersistence, err)
	}
	if err := s.mocRepo.Delete(ctx, mocID); err != nil {
		return fmt.Errorf("%w: deleting moc: %v", domain.ErrPersistence, err)
	}

	storageKeys := make([]string, 0, len(ownedFiles)+len(linkedImages))
	for i := range ownedFiles {
		storageKeys = append(storageKeys, ownedFiles[i].S3Key)
	}

	orphans := 0
	for i := range linkedImages {
		orphaned, err := s.isOrphaned(ctx, &linkedImages[i])
		if err != nil {
			log.Printf("mocService.DeleteMoc: orphan check for image %s failed: %v", linkedImages[i].ID, err)
			continue
		}
		if !orphaned {
			continue
		}
		if err := s.galleryRepo.DeleteImage(ctx, linkedImages[i].ID); err != nil {
			log.Printf("mocService.DeleteMoc: deleting orphaned image %s failed: %v", linkedImages[i].ID, err)
			continue
		}
		storageKeys = append(storageKeys, linkedImages[i].S3Key)
		orphans++
	}

	log.Printf("mocService.DeleteMoc: moc %s deleted (%d owned files, %d orphaned images)",
		mocID, len(ownedFiles), orphans)

	s.dispatch(ctx, port.Task{Kind: port.TaskStorageCleanup, StorageKeys: storageKeys})
	s.dispatch(ctx, port.Task{
		Kind:      port.TaskCacheInvalidate,
		CacheKeys: []string{fmt.Sprintf("moc:%s", mocID), fmt.Sprintf("mocs:%s", ownerID)},
	})
	s.dispatch(ctx, port.Task{Kind: port.TaskSearchDeindex, MocID: mocID})

	return nil
}

// isOrphaned reports whether no reference of any kind remains: a link to
// another MOC, an album-cover pin, or album membership.
func (s *mocService) isOrphaned(ctx context.Context, img *domain.GalleryImage) (bool, error) {
	linked, err := s.galleryRepo.IsLinkedToAnyMoc(ctx, img.ID)
	if err != nil {
		return false, err
	}
	if linked {
		return false, nil
	}

	cover, err := s.galleryRepo.IsAlbumCover(ctx, img.ID)
	if err != nil {
		return false, err
	}
	if cover {
		return false, nil
	}

	return img.AlbumID == nil, nil
}

func (s *mocService) dispatch(ctx context.Context, task port.Task) {
	if task.Kind == port.TaskStorageCleanup && len(task.StorageKeys) == 0 {
		return
	}
	if err := s.dispatcher.Dispatch(ctx, task); err != nil {
		log.Printf("mocService: dispatching %s task failed: %v", task.Kind, err)
	}
}
