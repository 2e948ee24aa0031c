package services

import (
	"SMCHealth/events"
	"SMCHealth/exceptions"
	"SMCHealth/models"
	"SMCHealth/notifier"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

type bedKey struct {
	hospitalID string
	bedType    models.BedType
}

// memDB is an in-memory stand-in for PostgreSQL. Transactions are serialized
// and rolled back by restoring a snapshot, unless interleaved is set: then
// transactions run concurrently with no rollback, and every counter change must
// hold up on the conditional store operations alone.
type memDB struct {
	txMu        sync.Mutex
	mu          sync.Mutex
	seq         int
	interleaved bool

	hospitals    map[string]models.Hospital
	beds         map[bedKey]models.HospitalBed
	patients     map[string]models.Patient
	doctors      map[string]models.Doctor
	appointments map[string]models.Appointment
	equipment    map[string]models.Equipment
	medicine     map[string]models.Medicine

	// injected failures
	failPatientCreate error
	conflictsLeft     int
}

func newMemDB() *memDB {
	return &memDB{
		hospitals:    map[string]models.Hospital{},
		beds:         map[bedKey]models.HospitalBed{},
		patients:     map[string]models.Patient{},
		doctors:      map[string]models.Doctor{},
		appointments: map[string]models.Appointment{},
		equipment:    map[string]models.Equipment{},
		medicine:     map[string]models.Medicine{},
	}
}

func (db *memDB) nextID(prefix string) string {
	db.seq++
	return fmt.Sprintf("%s-%d", prefix, db.seq)
}

type memSnapshot struct {
	hospitals    map[string]models.Hospital
	beds         map[bedKey]models.HospitalBed
	patients     map[string]models.Patient
	doctors      map[string]models.Doctor
	appointments map[string]models.Appointment
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (db *memDB) snapshot() memSnapshot {
	db.mu.Lock()
	defer db.mu.Unlock()
	return memSnapshot{
		hospitals:    copyMap(db.hospitals),
		beds:         copyMap(db.beds),
		patients:     copyMap(db.patients),
		doctors:      copyMap(db.doctors),
		appointments: copyMap(db.appointments),
	}
}

func (db *memDB) restore(s memSnapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.hospitals = s.hospitals
	db.beds = s.beds
	db.patients = s.patients
	db.doctors = s.doctors
	db.appointments = s.appointments
}

func (db *memDB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if db.interleaved {
		return fn(ctx)
	}
	db.txMu.Lock()
	defer db.txMu.Unlock()

	snap := db.snapshot()
	if err := fn(ctx); err != nil {
		db.restore(snap)
		return err
	}
	return nil
}

func (db *memDB) bed(hospitalID string, bedType models.BedType) models.HospitalBed {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.beds[bedKey{hospitalID, bedType}]
}

// seedHospital stores a hospital with the given beds, each as {total, available}.
func (db *memDB) seedHospital(id string, beds map[models.BedType][2]int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.hospitals[id] = models.Hospital{ID: id, Name: "Hospital " + id, ContactEmail: "ops@" + id + ".example"}
	for bedType, counts := range beds {
		db.beds[bedKey{id, bedType}] = models.HospitalBed{HospitalID: id, BedType: bedType, Total: counts[0], Available: counts[1]}
	}
}

func (db *memDB) seedDoctor(hospitalID, id, name string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.doctors[id] = models.Doctor{ID: id, HospitalID: hospitalID, Name: name, IsAvailable: true}
}

type memHospitals struct{ db *memDB }

func (s memHospitals) Create(_ context.Context, hospital *models.Hospital) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if hospital.ID == "" {
		hospital.ID = s.db.nextID("hospital")
	}
	stored := *hospital
	stored.Beds = nil
	s.db.hospitals[hospital.ID] = stored
	for i := range hospital.Beds {
		hospital.Beds[i].HospitalID = hospital.ID
		s.db.beds[bedKey{hospital.ID, hospital.Beds[i].BedType}] = hospital.Beds[i]
	}
	return nil
}

func (s memHospitals) GetByID(_ context.Context, id string) (*models.Hospital, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	hospital, ok := s.db.hospitals[id]
	if !ok {
		return nil, exceptions.ErrHospitalNotFound
	}
	hospital.Beds = nil
	for key, bed := range s.db.beds {
		if key.hospitalID == id {
			hospital.Beds = append(hospital.Beds, bed)
		}
	}
	sort.Slice(hospital.Beds, func(i, j int) bool { return hospital.Beds[i].BedType < hospital.Beds[j].BedType })
	return &hospital, nil
}

func (s memHospitals) List(ctx context.Context) ([]models.Hospital, error) {
	s.db.mu.Lock()
	ids := make([]string, 0, len(s.db.hospitals))
	for id := range s.db.hospitals {
		ids = append(ids, id)
	}
	s.db.mu.Unlock()

	hospitals := make([]models.Hospital, 0, len(ids))
	for _, id := range ids {
		hospital, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		hospitals = append(hospitals, *hospital)
	}
	sort.Slice(hospitals, func(i, j int) bool { return hospitals[i].Name < hospitals[j].Name })
	return hospitals, nil
}

func (s memHospitals) GetBed(_ context.Context, hospitalID string, bedType models.BedType) (*models.HospitalBed, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	bed, ok := s.db.beds[bedKey{hospitalID, bedType}]
	if !ok {
		return nil, exceptions.ErrNoSuchBedType
	}
	return &bed, nil
}

func (s memHospitals) ListBeds(_ context.Context, hospitalID string) ([]models.HospitalBed, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var beds []models.HospitalBed
	for key, bed := range s.db.beds {
		if key.hospitalID == hospitalID {
			beds = append(beds, bed)
		}
	}
	sort.Slice(beds, func(i, j int) bool { return beds[i].BedType < beds[j].BedType })
	return beds, nil
}

func (s memHospitals) DecrementAvailable(_ context.Context, hospitalID string, bedType models.BedType) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.conflictsLeft > 0 {
		s.db.conflictsLeft--
		return false, fmt.Errorf("%w: serialization failure", exceptions.ErrConflict)
	}
	key := bedKey{hospitalID, bedType}
	bed, ok := s.db.beds[key]
	if !ok || bed.Available <= 0 {
		return false, nil
	}
	bed.Available--
	s.db.beds[key] = bed
	return true, nil
}

func (s memHospitals) IncrementAvailable(_ context.Context, hospitalID string, bedType models.BedType) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	key := bedKey{hospitalID, bedType}
	bed, ok := s.db.beds[key]
	if !ok || bed.Available >= bed.Total {
		return false, nil
	}
	bed.Available++
	s.db.beds[key] = bed
	return true, nil
}

type memPatients struct{ db *memDB }

func (s memPatients) Create(_ context.Context, patient *models.Patient) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.failPatientCreate != nil {
		return s.db.failPatientCreate
	}
	if patient.ID == "" {
		patient.ID = s.db.nextID("patient")
	}
	s.db.patients[patient.ID] = *patient
	return nil
}

func (s memPatients) GetByID(_ context.Context, hospitalID, id string) (*models.Patient, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	patient, ok := s.db.patients[id]
	if !ok || patient.HospitalID != hospitalID {
		return nil, exceptions.ErrPatientNotFound
	}
	return &patient, nil
}

func (s memPatients) List(_ context.Context, hospitalID string) ([]models.Patient, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var patients []models.Patient
	for _, patient := range s.db.patients {
		if patient.HospitalID == hospitalID {
			patients = append(patients, patient)
		}
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].ID < patients[j].ID })
	return patients, nil
}

func (s memPatients) MarkDischarged(_ context.Context, hospitalID, id string, at time.Time) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	patient, ok := s.db.patients[id]
	if !ok || patient.HospitalID != hospitalID || patient.DischargeDate != nil {
		return false, nil
	}
	patient.DischargeDate = &at
	s.db.patients[id] = patient
	return true, nil
}

func (s memPatients) CountOPDSince(_ context.Context, hospitalID string, since time.Time) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	count := 0
	for _, patient := range s.db.patients {
		if patient.HospitalID == hospitalID && patient.PatientType == models.PatientTypeOPD && !patient.AdmissionDate.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s memPatients) CountCurrentIPD(_ context.Context, hospitalID string) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	count := 0
	for _, patient := range s.db.patients {
		if patient.HospitalID == hospitalID && patient.Admitted() {
			count++
		}
	}
	return count, nil
}

type memDoctors struct{ db *memDB }

func (s memDoctors) Create(_ context.Context, doctor *models.Doctor) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, existing := range s.db.doctors {
		if doctor.Phone != "" && existing.HospitalID == doctor.HospitalID && existing.Phone == doctor.Phone {
			return exceptions.ErrDuplicateDoctor
		}
	}
	if doctor.ID == "" {
		doctor.ID = s.db.nextID("doctor")
	}
	s.db.doctors[doctor.ID] = *doctor
	return nil
}

func (s memDoctors) GetByID(_ context.Context, hospitalID, id string) (*models.Doctor, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	doctor, ok := s.db.doctors[id]
	if !ok || doctor.HospitalID != hospitalID {
		return nil, exceptions.ErrDoctorNotFound
	}
	return &doctor, nil
}

func (s memDoctors) List(_ context.Context, hospitalID string, availableOnly bool) ([]models.Doctor, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var doctors []models.Doctor
	for _, doctor := range s.db.doctors {
		if doctor.HospitalID != hospitalID || (availableOnly && !doctor.IsAvailable) {
			continue
		}
		doctors = append(doctors, doctor)
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].Name < doctors[j].Name })
	return doctors, nil
}

func (s memDoctors) ToggleAvailability(_ context.Context, hospitalID, id string) (*models.Doctor, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	doctor, ok := s.db.doctors[id]
	if !ok || doctor.HospitalID != hospitalID {
		return nil, exceptions.ErrDoctorNotFound
	}
	doctor.IsAvailable = !doctor.IsAvailable
	s.db.doctors[id] = doctor
	return &doctor, nil
}

type memAppointments struct {
	db *memDB
	// statusRaces makes the next UpdateStatus calls lose the race.
	statusRaces int
}

func (s *memAppointments) Create(_ context.Context, appointment *models.Appointment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if appointment.ID == "" {
		appointment.ID = s.db.nextID("appointment")
	}
	s.db.appointments[appointment.ID] = *appointment
	return nil
}

func (s *memAppointments) GetByID(_ context.Context, hospitalID, id string) (*models.Appointment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	appointment, ok := s.db.appointments[id]
	if !ok || appointment.HospitalID != hospitalID {
		return nil, exceptions.ErrAppointmentNotFound
	}
	return &appointment, nil
}

func (s *memAppointments) ListByHospital(_ context.Context, hospitalID string) ([]models.Appointment, error) {
	return s.list(func(a models.Appointment) bool { return a.HospitalID == hospitalID }), nil
}

func (s *memAppointments) ListByCitizen(_ context.Context, citizenID string) ([]models.Appointment, error) {
	return s.list(func(a models.Appointment) bool { return a.CitizenID == citizenID }), nil
}

func (s *memAppointments) list(keep func(models.Appointment) bool) []models.Appointment {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var appointments []models.Appointment
	for _, appointment := range s.db.appointments {
		if keep(appointment) {
			appointments = append(appointments, appointment)
		}
	}
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].AppointmentDate.After(appointments[j].AppointmentDate)
	})
	return appointments
}

func (s *memAppointments) UpdateStatus(_ context.Context, hospitalID, id string, from, to models.AppointmentStatus, notes *string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.statusRaces > 0 {
		s.statusRaces--
		return false, nil
	}
	appointment, ok := s.db.appointments[id]
	if !ok || appointment.HospitalID != hospitalID || appointment.Status != from {
		return false, nil
	}
	appointment.Status = to
	if notes != nil {
		appointment.Notes = *notes
	}
	s.db.appointments[id] = appointment
	return true, nil
}

type memInventory struct{ db *memDB }

func (s memInventory) CreateEquipment(_ context.Context, equipment *models.Equipment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if equipment.ID == "" {
		equipment.ID = s.db.nextID("equipment")
	}
	s.db.equipment[equipment.ID] = *equipment
	return nil
}

func (s memInventory) GetEquipment(_ context.Context, hospitalID, id string) (*models.Equipment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	equipment, ok := s.db.equipment[id]
	if !ok || equipment.HospitalID != hospitalID {
		return nil, exceptions.ErrEquipmentNotFound
	}
	return &equipment, nil
}

func (s memInventory) UpdateEquipment(_ context.Context, equipment *models.Equipment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	existing, ok := s.db.equipment[equipment.ID]
	if !ok || existing.HospitalID != equipment.HospitalID {
		return exceptions.ErrEquipmentNotFound
	}
	s.db.equipment[equipment.ID] = *equipment
	return nil
}

func (s memInventory) DeleteEquipment(_ context.Context, hospitalID, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	existing, ok := s.db.equipment[id]
	if !ok || existing.HospitalID != hospitalID {
		return exceptions.ErrEquipmentNotFound
	}
	delete(s.db.equipment, id)
	return nil
}

func (s memInventory) ListEquipment(_ context.Context, hospitalID string) ([]models.Equipment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.Equipment
	for _, equipment := range s.db.equipment {
		if equipment.HospitalID == hospitalID {
			out = append(out, equipment)
		}
	}
	return out, nil
}

func (s memInventory) CreateMedicine(_ context.Context, medicine *models.Medicine) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if medicine.ID == "" {
		medicine.ID = s.db.nextID("medicine")
	}
	s.db.medicine[medicine.ID] = *medicine
	return nil
}

func (s memInventory) GetMedicine(_ context.Context, hospitalID, id string) (*models.Medicine, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	medicine, ok := s.db.medicine[id]
	if !ok || medicine.HospitalID != hospitalID {
		return nil, exceptions.ErrMedicineNotFound
	}
	return &medicine, nil
}

func (s memInventory) UpdateMedicine(_ context.Context, medicine *models.Medicine) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	existing, ok := s.db.medicine[medicine.ID]
	if !ok || existing.HospitalID != medicine.HospitalID {
		return exceptions.ErrMedicineNotFound
	}
	s.db.medicine[medicine.ID] = *medicine
	return nil
}

func (s memInventory) DeleteMedicine(_ context.Context, hospitalID, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	existing, ok := s.db.medicine[id]
	if !ok || existing.HospitalID != hospitalID {
		return exceptions.ErrMedicineNotFound
	}
	delete(s.db.medicine, id)
	return nil
}

func (s memInventory) ListMedicine(_ context.Context, hospitalID string) ([]models.Medicine, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.Medicine
	for _, medicine := range s.db.medicine {
		if medicine.HospitalID == hospitalID {
			out = append(out, medicine)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.Type)
	}
	return out
}

func (p *recordingPublisher) count(eventType string) int {
	n := 0
	for _, t := range p.types() {
		if t == eventType {
			n++
		}
	}
	return n
}

type recordingAlerter struct {
	mu     sync.Mutex
	alerts []notifier.Alert
}

func (a *recordingAlerter) Raise(_ context.Context, alert notifier.Alert) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alerts = append(a.alerts, alert)
}

func (a *recordingAlerter) kinds() []notifier.Kind {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]notifier.Kind, 0, len(a.alerts))
	for _, alert := range a.alerts {
		out = append(out, alert.Kind)
	}
	return out
}

// fixture wires every service over one memDB.
type fixture struct {
	db           *memDB
	publisher    *recordingPublisher
	alerter      *recordingAlerter
	appointments *memAppointments
	ledger       *BedLedger
	patients     *PatientService
	doctors      *DoctorService
	appointSvc   *AppointmentService
	inventory    *InventoryService
	hospitals    *HospitalService
}

func newFixture(strictAppointments bool) *fixture {
	db := newMemDB()
	log := zap.NewNop()
	publisher := &recordingPublisher{}
	alerter := &recordingAlerter{}
	retry := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}
	appointments := &memAppointments{db: db}

	ledger := NewBedLedger(memHospitals{db}, publisher, alerter, log)
	return &fixture{
		db:           db,
		publisher:    publisher,
		alerter:      alerter,
		appointments: appointments,
		ledger:       ledger,
		patients:     NewPatientService(db, memPatients{db}, memDoctors{db}, ledger, retry, publisher, log),
		doctors:      NewDoctorService(memDoctors{db}, memPatients{db}, log),
		appointSvc:   NewAppointmentService(appointments, memDoctors{db}, retry, strictAppointments, publisher, log),
		inventory:    NewInventoryService(memInventory{db}, memHospitals{db}, alerter, log),
		hospitals:    NewHospitalService(memHospitals{db}, memPatients{db}, ledger, log),
	}
}
