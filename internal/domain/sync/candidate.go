package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"hmis/internal/domain/casereport"
	"hmis/internal/domain/intimation"
	"hmis/internal/domain/patient"
	"hmis/internal/domain/prescription"
	"hmis/internal/domain/vital"
)

// Candidate - одна запись пакета, разобранная на границе в типизированную форму.
type Candidate interface {
	// Key - естественный ключ или id записи для журнала, может быть пустым.
	Key() string
	// Normalize проверяет запись без обращения к базе и возвращает план записи
	// или причину пропуска.
	Normalize(now string) (Plan, SkipReason)
}

// Plan - нормализованная запись, которую осталось применить в пакете.
type Plan interface {
	Apply(ctx context.Context, b Batch) error
}

// DecodeBatch разбирает тело запроса. Не массив - ErrNotArray, элементы,
// которые не удалось разобрать, становятся Malformed.
func DecodeBatch(entity Entity, body []byte) ([]Candidate, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return nil, ErrNotArray
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArray, err)
	}

	out := make([]Candidate, 0, len(elems))
	for _, raw := range elems {
		c, err := decodeCandidate(entity, raw)
		if err != nil {
			out = append(out, Malformed{Err: err})
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

var errNotObject = errors.New("record is not an object")

func decodeCandidate(entity Entity, raw json.RawMessage) (Candidate, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, errNotObject
	}

	switch entity {
	case EntityPatients:
		return decodeAs(raw, func(in patient.Input) Candidate { return PatientCandidate{Input: in} })
	case EntityVitals:
		return decodeAs(raw, func(in vital.Input) Candidate { return VitalCandidate{Input: in} })
	case EntityPrescriptions:
		return decodeAs(raw, func(in prescription.Input) Candidate { return PrescriptionCandidate{Input: in} })
	case EntityCaseReports:
		return decodeAs(raw, func(in casereport.Input) Candidate { return CaseReportCandidate{Input: in} })
	case EntitySickIntimations:
		return decodeAs(raw, func(in intimation.Input) Candidate { return SickIntimationCandidate{Input: in} })
	}
	return nil, ErrUnknownEntity
}

func decodeAs[T any](raw []byte, wrap func(T) Candidate) (Candidate, error) {
	var in T
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, err
	}
	return wrap(in), nil
}

// Malformed - элемент пакета, который не удалось разобрать.
type Malformed struct {
	Err error
}

func (Malformed) Key() string { return "" }

func (Malformed) Normalize(string) (Plan, SkipReason) {
	return nil, ReasonMalformed
}

type PatientCandidate struct {
	Input patient.Input
}

func (c PatientCandidate) Key() string { return c.Input.USN.Trim() }

// Normalize требует только USN и имя. Возраст по умолчанию 0, пол - Unknown.
func (c PatientCandidate) Normalize(string) (Plan, SkipReason) {
	p := patient.Patient{
		USN:      c.Input.USN.Trim(),
		FullName: c.Input.FullName.Trim(),
		Age:      c.Input.Age.Or(0),
		Gender:   c.Input.Gender.Or(patient.UnknownGender),
		Contact:  c.Input.ContactOrPhone(),
		Address:  c.Input.Address.Trim(),
	}
	if p.USN == "" {
		return nil, ReasonMissingKey
	}
	if p.FullName == "" {
		return nil, ReasonMissingName
	}
	return patientPlan{p: p}, ""
}

type patientPlan struct {
	p patient.Patient
}

func (pl patientPlan) Apply(ctx context.Context, b Batch) error {
	return b.UpsertPatient(ctx, pl.p)
}

type VitalCandidate struct {
	Input vital.Input
}

func (c VitalCandidate) Key() string { return idOrUSN(c.Input.ID.Ptr(), c.Input.USN.Trim()) }

func (c VitalCandidate) Normalize(now string) (Plan, SkipReason) {
	if c.Input.USN.Trim() == "" {
		return nil, ReasonMissingPatientRef
	}
	v, err := c.Input.Normalize(now)
	switch {
	case errors.Is(err, vital.ErrMissingFields):
		return nil, ReasonMissingMeasurement
	case err != nil:
		return nil, ReasonInvalidMeasurement
	}
	return vitalPlan{v: v}, ""
}

type vitalPlan struct {
	v vital.Vital
}

func (pl vitalPlan) Apply(ctx context.Context, b Batch) error {
	if err := requirePatient(ctx, b, pl.v.USN); err != nil {
		return err
	}
	return b.UpsertVital(ctx, pl.v)
}

type PrescriptionCandidate struct {
	Input prescription.Input
}

func (c PrescriptionCandidate) Key() string {
	return idOrUSN(c.Input.ID.Ptr(), c.Input.USN.Trim())
}

// Normalize не требует диагноза: офлайн-клиент может прислать черновик рецепта.
func (c PrescriptionCandidate) Normalize(now string) (Plan, SkipReason) {
	p := c.Input.Normalize(now)
	if p.USN == "" {
		return nil, ReasonMissingPatientRef
	}
	return prescriptionPlan{p: p}, ""
}

type prescriptionPlan struct {
	p prescription.Prescription
}

func (pl prescriptionPlan) Apply(ctx context.Context, b Batch) error {
	if err := requirePatient(ctx, b, pl.p.USN); err != nil {
		return err
	}
	return b.UpsertPrescription(ctx, pl.p)
}

type CaseReportCandidate struct {
	Input casereport.Input
}

func (c CaseReportCandidate) Key() string { return c.Input.Number() }

func (c CaseReportCandidate) Normalize(now string) (Plan, SkipReason) {
	if c.Input.Number() == "" {
		return nil, ReasonMissingKey
	}
	r, err := c.Input.Normalize(now)
	if err != nil {
		return nil, ReasonMissingPatientRef
	}
	return caseReportPlan{placeholder: c.Input.Placeholder(), r: r}, ""
}

type caseReportPlan struct {
	placeholder patient.Patient
	r           casereport.CaseReport
}

// Apply заводит карточку-заглушку, если пациента ещё нет, и сохраняет историю.
func (pl caseReportPlan) Apply(ctx context.Context, b Batch) error {
	if err := b.EnsurePatient(ctx, pl.placeholder); err != nil {
		return err
	}
	return b.UpsertCaseReport(ctx, pl.r)
}

type SickIntimationCandidate struct {
	Input intimation.Input
}

func (c SickIntimationCandidate) Key() string { return c.Input.Number() }

func (c SickIntimationCandidate) Normalize(now string) (Plan, SkipReason) {
	if c.Input.Number() == "" {
		return nil, ReasonMissingKey
	}
	it, err := c.Input.Normalize(now)
	switch {
	case errors.Is(err, intimation.ErrRequiredFields):
		return nil, ReasonMissingPatientRef
	case err != nil:
		return nil, ReasonMissingField
	}
	return sickIntimationPlan{placeholder: c.Input.Placeholder(), it: it}, ""
}

type sickIntimationPlan struct {
	placeholder patient.Patient
	it          intimation.Intimation
}

func (pl sickIntimationPlan) Apply(ctx context.Context, b Batch) error {
	if err := b.EnsurePatient(ctx, pl.placeholder); err != nil {
		return err
	}
	return b.UpsertSickIntimation(ctx, pl.it)
}

// requirePatient пропускает запись, если пациента нет. Заглушку для замеров
// и рецептов не заводим.
func requirePatient(ctx context.Context, b Batch, usn string) error {
	ok, err := b.PatientExists(ctx, usn)
	if err != nil {
		return err
	}
	if !ok {
		return skip(ReasonPatientNotFound)
	}
	return nil
}

func idOrUSN(id *int, usn string) string {
	if id != nil {
		return strconv.Itoa(*id)
	}
	return usn
}
