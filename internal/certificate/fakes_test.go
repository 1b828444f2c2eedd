package certificate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harborlabs/fleetdocs/internal/audit"
	"github.com/harborlabs/fleetdocs/internal/config"
	"github.com/harborlabs/fleetdocs/internal/extraction"
	"github.com/harborlabs/fleetdocs/internal/fingerprint"
	"github.com/harborlabs/fleetdocs/internal/models"
	"github.com/harborlabs/fleetdocs/internal/quality"
)

// In-memory Repository. Insertion order is preserved so ListUnassigned is
// deterministic.
type fakeRepo struct {
	docs      map[uuid.UUID]*models.ShipDocument
	order     []uuid.UUID
	ships     map[uuid.UUID]*models.Ship
	assignErr error
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:  make(map[uuid.UUID]*models.ShipDocument),
		ships: make(map[uuid.UUID]*models.Ship),
	}
}

func (r *fakeRepo) addShip(name string) uuid.UUID {
	id := uuid.New()
	r.ships[id] = &models.Ship{ID: id, Name: name, CreatedAt: time.Now()}
	return id
}

func (r *fakeRepo) add(doc *models.ShipDocument) {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	r.docs[doc.ID] = doc
	r.order = append(r.order, doc.ID)
}

func (r *fakeRepo) ListByShip(_ context.Context, shipID uuid.UUID) ([]models.ShipDocument, error) {
	var out []models.ShipDocument
	for _, id := range r.order {
		d := r.docs[id]
		if d != nil && d.ShipID != nil && *d.ShipID == shipID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*models.ShipDocument, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeRepo) Create(_ context.Context, doc *models.ShipDocument) error {
	if r.createErr != nil {
		return r.createErr
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	doc.CreatedAt = time.Now()
	r.docs[doc.ID] = doc
	r.order = append(r.order, doc.ID)
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id, shipID uuid.UUID) (bool, error) {
	d, ok := r.docs[id]
	if !ok || d.ShipID == nil || *d.ShipID != shipID {
		return false, nil
	}
	delete(r.docs, id)
	return true, nil
}

func (r *fakeRepo) Remove(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.docs[id]; !ok {
		return false, nil
	}
	delete(r.docs, id)
	return true, nil
}

func (r *fakeRepo) ListUnassigned(_ context.Context, limit int) ([]models.ShipDocument, error) {
	var out []models.ShipDocument
	for _, id := range r.order {
		d := r.docs[id]
		if d == nil || d.ShipID != nil || d.Summary == "" {
			continue
		}
		out = append(out, *d)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeRepo) AssignShip(_ context.Context, docID, shipID uuid.UUID, shipName string) error {
	if r.assignErr != nil {
		return r.assignErr
	}
	d, ok := r.docs[docID]
	if !ok {
		return fmt.Errorf("document %s not found", docID)
	}
	sid := shipID
	d.ShipID = &sid
	d.ExtractedShipName = &shipName
	return nil
}

func (r *fakeRepo) GetShip(_ context.Context, id uuid.UUID) (*models.Ship, error) {
	return r.ships[id], nil
}

func (r *fakeRepo) FindShipByName(_ context.Context, name string) (*models.Ship, error) {
	for _, s := range r.ships {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) count() int { return len(r.docs) }

type fakeAnalyzer struct {
	analysis *extraction.DocumentAnalysis
	err      error
}

func (a *fakeAnalyzer) Analyze(context.Context, string, string, []byte) (*extraction.DocumentAnalysis, error) {
	if a.err != nil {
		return nil, a.err
	}
	cp := *a.analysis
	return &cp, nil
}

type fakeStorage struct {
	uploads   map[string]string // file id -> folder
	renames   map[string]string // file id -> new name
	deleted   []string
	ensured   []string
	uploadErr error
	seq       int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string]string), renames: make(map[string]string)}
}

func (s *fakeStorage) Upload(_ context.Context, folder, _, _ string, _ []byte) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.seq++
	id := fmt.Sprintf("file-%d", s.seq)
	s.uploads[id] = folder
	return id, nil
}

func (s *fakeStorage) Delete(_ context.Context, fileID string) error {
	s.deleted = append(s.deleted, fileID)
	delete(s.uploads, fileID)
	return nil
}

func (s *fakeStorage) Rename(_ context.Context, fileID, newName string) error {
	s.renames[fileID] = newName
	return nil
}

func (s *fakeStorage) EnsureFolder(_ context.Context, path string) (string, error) {
	s.ensured = append(s.ensured, path)
	return "folder-" + path, nil
}

type recordingAudit struct {
	entries []audit.Entry
}

func (a *recordingAudit) Record(_ context.Context, e audit.Entry) {
	a.entries = append(a.entries, e)
}

func (a *recordingAudit) actions() []string {
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action)
	}
	return out
}

type harness struct {
	repo     *fakeRepo
	analyzer *fakeAnalyzer
	storage  *fakeStorage
	audit    *recordingAudit
	svc      *Service
}

func newHarness() *harness {
	h := &harness{
		repo:     newFakeRepo(),
		analyzer: &fakeAnalyzer{},
		storage:  newFakeStorage(),
		audit:    &recordingAudit{},
	}
	matcher := fingerprint.NewMatcher(config.FingerprintConfig{
		Threshold:        0.85,
		NumberMatchScore: 0.95,
		NameWeight:       0.9,
	})
	gate := quality.NewGate(50, 2)
	h.svc = NewService(h.repo, h.analyzer, matcher, gate, h.storage, h.audit, nil)
	return h
}

func goodAnalysis() *extraction.DocumentAnalysis {
	return &extraction.DocumentAnalysis{
		DocumentName:   "Safety Management Certificate",
		DocumentNumber: "SMC-2024-001",
		IssueDate:      "2024-03-01",
		ValidUntil:     "2029-03-01",
		HolderName:     "Nordic Shipping AS",
		ShipName:       "Northern Star",
		Category:       models.CategoryCertificate,
		Confidence:     "high",
		RawTextLength:  820,
		Summary:        "Safety Management Certificate issued to Nordic Shipping AS. Ship name: Northern Star.",
	}
}
