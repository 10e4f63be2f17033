//GET  /api/health, /health                 # Проверка доступности
//GET|POST /api/patients                     # Пациенты
//PUT|DELETE /api/patients/{usn}
//GET  /api/patients/search?q=              # Карта пациента по USN или телефону
//GET|POST /api/vitals                       # Замеры
//GET|POST /api/prescriptions                # Рецепты
//GET  /api/prescriptions/{id}              # Печатная форма
//POST /api/prescriptions/{id}/items
//GET|POST /api/case-reports                 # Истории болезни
//GET|POST /api/sick-intimations             # Извещения о болезни
//GET|POST /api/appointments                 # Расписание
//POST /api/appointments/{id}/update|delete
//GET  /api/lab-tests, GET|POST /api/lab-orders, POST /api/lab-results/{item_id}
//GET  /api/metrics                         # Показатели за день
//GET  /api/audit-logs                      # Журнал аудита
//GET  /api/export/{kind}, /export.csv      # CSV
//POST /api/sync/{entity}, /sync/{entity}   # Пакеты офлайн-клиентов
//GET  /api/sync/status, /sync/status

package api

import (
	"path"
	"reflect"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"

	appointmentAPI "hmis/internal/app/server/api/http/appointment"
	auditAPI "hmis/internal/app/server/api/http/audit"
	casereportAPI "hmis/internal/app/server/api/http/casereport"
	exportAPI "hmis/internal/app/server/api/http/export"
	healthAPI "hmis/internal/app/server/api/http/health"
	"hmis/internal/app/server/api/http/httperr"
	intimationAPI "hmis/internal/app/server/api/http/intimation"
	labAPI "hmis/internal/app/server/api/http/lab"
	metricsAPI "hmis/internal/app/server/api/http/metrics"
	"hmis/internal/app/server/api/http/middleware"
	"hmis/internal/app/server/api/http/middleware/logger"
	"hmis/internal/app/server/api/http/middleware/requestid"
	patientAPI "hmis/internal/app/server/api/http/patient"
	prescriptionAPI "hmis/internal/app/server/api/http/prescription"
	syncAPI "hmis/internal/app/server/api/http/sync"
	vitalAPI "hmis/internal/app/server/api/http/vital"
	"hmis/internal/domain/appointment"
	"hmis/internal/domain/audit"
	"hmis/internal/domain/casereport"
	"hmis/internal/domain/export"
	"hmis/internal/domain/intimation"
	"hmis/internal/domain/lab"
	"hmis/internal/domain/metrics"
	"hmis/internal/domain/patient"
	"hmis/internal/domain/prescription"
	"hmis/internal/domain/sync"
	"hmis/internal/domain/vital"
	"hmis/internal/infrastructure/storage/sqlite"
	"hmis/internal/utils/clock"
)

// Router - обработчик, который умеет регистрировать свои операции.
type Router interface {
	SetupRoutes(api huma.API)
}

type Handlers struct {
	Health       *healthAPI.Handler
	Patient      *patientAPI.Handler
	Vital        *vitalAPI.Handler
	Prescription *prescriptionAPI.Handler
	CaseReport   *casereportAPI.Handler
	Intimation   *intimationAPI.Handler
	Appointment  *appointmentAPI.Handler
	Lab          *labAPI.Handler
	Metrics      *metricsAPI.Handler
	Audit        *auditAPI.Handler
	Export       *exportAPI.Handler
	Sync         *syncAPI.Handler
}

func (h *Handlers) all() []Router {
	return []Router{
		h.Health, h.Patient, h.Vital, h.Prescription, h.CaseReport, h.Intimation,
		h.Appointment, h.Lab, h.Metrics, h.Audit, h.Export, h.Sync,
	}
}

// New создает *chi.Mux со всеми операциями через huma.Register.
// now задает часы для серверных меток времени, nil - системные часы в UTC.
func New(storage *sqlite.Storage, log *slog.Logger, now clock.Func) *chi.Mux {
	httperr.Install()

	mux := chi.NewMux()
	mux.Use(chimw.Recoverer)

	config := huma.DefaultConfig("HMIS API", "1.0.0")
	// ответы без поля $schema
	config.CreateHooks = nil
	config.Components.Schemas = huma.NewMapRegistry("#/components/schemas/", schemaName)

	API := humachi.New(mux, config)

	for _, h := range handlers(storage, log, now).all() {
		h.SetupRoutes(API)
	}

	return mux
}

// schemaName добавляет к имени схемы пакет типа: patient.View - patientView.
func schemaName(t reflect.Type, hint string) string {
	name := huma.DefaultSchemaNamer(t, hint)
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Array || t.Kind() == reflect.Map {
		t = t.Elem()
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return name
	}
	return path.Base(t.PkgPath()) + name
}

func handlers(storage *sqlite.Storage, log *slog.Logger, now clock.Func) *Handlers {
	db := storage.DB()
	requestIDMW := requestid.New()
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()
	common := func() huma.Middlewares {
		middlewares.Add(requestIDMW.Middleware())
		middlewares.Add(loggerMW.Middleware())
		return middlewares.GetAllAndClear()
	}

	auditRepo := sqlite.NewAuditRepository(db, log)
	auditService := audit.NewService(auditRepo, log, now)

	vitalRepo := sqlite.NewVitalRepository(db, log)
	vitalService := vital.NewService(vitalRepo, log, now)

	prescriptionRepo := sqlite.NewPrescriptionRepository(db, log)
	prescriptionService := prescription.NewService(prescriptionRepo, log, now)

	patientRepo := sqlite.NewPatientRepository(db, log)
	patientService := patient.NewService(patientRepo, vitalRepo, prescriptionRepo, auditService, log)

	caseReportService := casereport.NewService(sqlite.NewCaseReportRepository(db, log), log, now)
	intimationService := intimation.NewService(sqlite.NewIntimationRepository(db, log), log, now)
	appointmentService := appointment.NewService(sqlite.NewAppointmentRepository(db, log), log)
	labService := lab.NewService(sqlite.NewLabRepository(db, log), log, now)
	metricsService := metrics.NewService(sqlite.NewMetricsRepository(db, log), now)
	exportService := export.NewService(sqlite.NewExportRepository(db, log), log)
	syncService := sync.NewService(sqlite.NewSyncRepository(db, log), auditService, log, now)

	return &Handlers{
		Health:       healthAPI.NewHandler(log, now, common()),
		Patient:      patientAPI.NewHandler(patientService, log, common()),
		Vital:        vitalAPI.NewHandler(vitalService, log, common()),
		Prescription: prescriptionAPI.NewHandler(prescriptionService, log, common()),
		CaseReport:   casereportAPI.NewHandler(caseReportService, log, common()),
		Intimation:   intimationAPI.NewHandler(intimationService, log, common()),
		Appointment:  appointmentAPI.NewHandler(appointmentService, log, common()),
		Lab:          labAPI.NewHandler(labService, log, common()),
		Metrics:      metricsAPI.NewHandler(metricsService, log, common()),
		Audit:        auditAPI.NewHandler(auditService, log, common()),
		Export:       exportAPI.NewHandler(exportService, log, common()),
		Sync:         syncAPI.NewHandler(syncService, log, common()),
	}
}
