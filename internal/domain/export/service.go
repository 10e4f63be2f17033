package export

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/exp/slog"
)

// Servicer интерфейс сервиса выгрузок
type Servicer interface {
	Export(ctx context.Context, kind Kind) (*File, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(slog.String("component", "export_service")),
	}
}

// FileName возвращает имя файла, под которым отдаётся выгрузка.
func FileName(kind Kind) string {
	switch kind {
	case KindPatients:
		return "patients.csv"
	case KindVitals:
		return "vitals.csv"
	case KindPrescriptions:
		return "prescriptions.csv"
	case KindComplete:
		return "complete_patient_data.csv"
	case KindLegacy:
		return "hmis-export.csv"
	}
	return ""
}

func (s *Service) Export(ctx context.Context, kind Kind) (*File, error) {
	var (
		buf bytes.Buffer
		err error
	)

	switch kind {
	case KindPatients:
		patients, qerr := s.repo.Patients(ctx)
		if qerr != nil {
			return nil, fmt.Errorf("failed to load patients: %w", qerr)
		}
		err = WritePatients(&buf, patients)
	case KindVitals:
		rows, qerr := s.repo.Vitals(ctx)
		if qerr != nil {
			return nil, fmt.Errorf("failed to load vitals: %w", qerr)
		}
		err = WriteVitals(&buf, rows)
	case KindPrescriptions:
		rows, qerr := s.repo.Prescriptions(ctx)
		if qerr != nil {
			return nil, fmt.Errorf("failed to load prescriptions: %w", qerr)
		}
		err = WritePrescriptions(&buf, rows)
	case KindComplete:
		rows, qerr := s.repo.Summaries(ctx)
		if qerr != nil {
			return nil, fmt.Errorf("failed to load patient summaries: %w", qerr)
		}
		err = WriteComplete(&buf, rows)
	case KindLegacy:
		data, qerr := s.repo.Legacy(ctx)
		if qerr != nil {
			return nil, fmt.Errorf("failed to load export data: %w", qerr)
		}
		err = WriteLegacy(&buf, data)
	default:
		return nil, ErrUnknownKind
	}
	if err != nil {
		return nil, err
	}

	s.log.Debug("export built", slog.String("kind", string(kind)), slog.Int("bytes", buf.Len()))
	return &File{Name: FileName(kind), Body: buf.Bytes()}, nil
}
