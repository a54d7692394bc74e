package services

import (
	"bytes"
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/bookwise/internal/export"
	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/repositories"
	"github.com/yoockh/bookwise/internal/storage"
	"github.com/yoockh/bookwise/internal/utils"
)

type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
	// URL is a signed link to the archived copy, empty when not archived.
	URL string
}

type BackupMetadata struct {
	StorageType      string `json:"storage_type"`
	TotalRooms       int    `json:"total_rooms"`
	TotalTranscripts int    `json:"total_transcripts"`
	TotalOrders      int    `json:"total_orders"`
	TotalFeedback    int    `json:"total_feedback"`
}

type Backup struct {
	ExportTimestamp time.Time         `json:"export_timestamp"`
	Transcripts     []RoomTranscripts `json:"transcripts"`
	Orders          []models.Order    `json:"orders"`
	Feedback        []models.Feedback `json:"feedback"`
	Metadata        BackupMetadata    `json:"metadata"`
}

type ExportService interface {
	OrdersWorkbook(ctx context.Context) (*ExportFile, error)
	AdminsWorkbook(ctx context.Context) (*ExportFile, error)
	Backup(ctx context.Context) (*Backup, error)
}

// ExportDeps wires an ExportService. Archive is optional.
type ExportDeps struct {
	Transcripts repositories.TranscriptRepository
	Orders      repositories.OrderRepository
	Feedback    repositories.FeedbackRepository
	Admins      repositories.AdminRepository
	Archive     storage.Archive
	Logger      *logrus.Logger

	StorageType string
	URLTTL      time.Duration
	Now         func() time.Time
}

type exportService struct {
	ExportDeps
}

func NewExportService(d ExportDeps) ExportService {
	if d.Logger == nil {
		d.Logger = logrus.New()
	}
	if d.URLTTL <= 0 {
		d.URLTTL = time.Hour
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.StorageType == "" {
		d.StorageType = "memory"
	}
	return &exportService{ExportDeps: d}
}

func (s *exportService) OrdersWorkbook(ctx context.Context) (*ExportFile, error) {
	const op = "ExportService.OrdersWorkbook"

	orders, err := s.Orders.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list orders", err)
	}
	return s.render(ctx, op, "orders", export.OrderSheet(orders))
}

func (s *exportService) AdminsWorkbook(ctx context.Context) (*ExportFile, error) {
	const op = "ExportService.AdminsWorkbook"

	admins, err := s.Admins.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list admins", err)
	}
	return s.render(ctx, op, "admin_accounts", export.AdminSheet(admins))
}

func (s *exportService) render(ctx context.Context, op, prefix string, sheet export.Sheet) (*ExportFile, error) {
	data, err := export.Workbook(sheet)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to render workbook", err)
	}

	now := s.Now()
	f := &ExportFile{
		Filename:    export.Filename(prefix, now),
		ContentType: export.ContentType,
		Data:        data,
	}
	if s.Archive == nil {
		return f, nil
	}

	log := s.Logger.WithFields(logrus.Fields{"op": op, "file": f.Filename})
	object := storage.ExportObject(f.Filename, now)
	if _, err := s.Archive.Upload(ctx, object, f.ContentType, bytes.NewReader(data)); err != nil {
		log.WithError(err).Warn("export archive upload failed")
		return f, nil
	}
	if f.URL, err = s.Archive.SignedGetURL(ctx, object, s.URLTTL); err != nil {
		log.WithError(err).Warn("export signed url failed")
	}
	return f, nil
}

func (s *exportService) Backup(ctx context.Context) (*Backup, error) {
	const op = "ExportService.Backup"

	utts, err := s.Transcripts.ListAll(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list transcripts", err)
	}
	orders, err := s.Orders.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list orders", err)
	}
	feedback, err := s.Feedback.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list feedback", err)
	}

	rooms := groupByRoom(utts)
	return &Backup{
		ExportTimestamp: s.Now().UTC(),
		Transcripts:     rooms,
		Orders:          orders,
		Feedback:        feedback,
		Metadata: BackupMetadata{
			StorageType:      s.StorageType,
			TotalRooms:       len(rooms),
			TotalTranscripts: len(utts),
			TotalOrders:      len(orders),
			TotalFeedback:    len(feedback),
		},
	}, nil
}
