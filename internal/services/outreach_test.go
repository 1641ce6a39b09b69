package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"eventconnect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRequestRepo is an in-memory EventRequestRepository for tests.
type fakeEventRequestRepo struct {
	byID            map[string]*domain.EventRequest
	nextID          int
	createErr       error
	updateStatusErr error
	statusUpdates   []string // "<id>:<status>" in call order
}

func newFakeEventRequestRepo() *fakeEventRequestRepo {
	return &fakeEventRequestRepo{byID: make(map[string]*domain.EventRequest), nextID: 1}
}

func (f *fakeEventRequestRepo) Create(ctx context.Context, e *domain.EventRequest) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRequestRepo) GetByID(ctx context.Context, id string) (*domain.EventRequest, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRequestRepo) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.EventRequest, error) {
	out := []*domain.EventRequest{}
	for _, e := range f.byID {
		if e.OrganizerID == organizerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRequestRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	e, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Status = status
	f.statusUpdates = append(f.statusUpdates, id+":"+status)
	return nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byEmail   map[string]*domain.User
	nextID    int
	createErr error
	emailErr  error // if set, GetEmailByID returns this
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetEmailByID(ctx context.Context, id string) (string, error) {
	if f.emailErr != nil {
		return "", f.emailErr
	}
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Email, nil
}

func (f *fakeUserRepo) addUser(id, email string) *domain.User {
	u := &domain.User{ID: id, Email: email, UserType: domain.UserTypeOrganizer}
	f.byEmail[email] = u
	return u
}

// fakeSelectedPartnerRepo keeps selections in insertion order.
type fakeSelectedPartnerRepo struct {
	details   []*domain.SelectedPartnerDetail
	nextID    int
	createErr error
	listErr   error
}

func newFakeSelectedPartnerRepo() *fakeSelectedPartnerRepo {
	return &fakeSelectedPartnerRepo{nextID: 1}
}

func (f *fakeSelectedPartnerRepo) Create(ctx context.Context, sp *domain.SelectedPartner) error {
	if f.createErr != nil {
		return f.createErr
	}
	sp.ID = fmt.Sprintf("sel-%d", f.nextID)
	f.nextID++
	f.details = append(f.details, &domain.SelectedPartnerDetail{SelectedPartner: *sp})
	return nil
}

func (f *fakeSelectedPartnerRepo) ListDetailsByEventRequestID(ctx context.Context, eventRequestID string) ([]*domain.SelectedPartnerDetail, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*domain.SelectedPartnerDetail{}
	for _, d := range f.details {
		if d.EventRequestID == eventRequestID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeSelectedPartnerRepo) addSelection(eventID string, partner *domain.Partner, serviceType string) {
	f.details = append(f.details, &domain.SelectedPartnerDetail{
		SelectedPartner: domain.SelectedPartner{
			ID:             fmt.Sprintf("sel-%d", f.nextID),
			EventRequestID: eventID,
			PartnerID:      partner.ID,
			ServiceType:    serviceType,
		},
		Partner: partner,
	})
	f.nextID++
}

// fakeEventFileRepo is an in-memory EventFileRepository for tests.
type fakeEventFileRepo struct {
	files     []*domain.EventFile
	nextID    int
	createErr error
	listErr   error
}

func newFakeEventFileRepo() *fakeEventFileRepo {
	return &fakeEventFileRepo{nextID: 1}
}

func (f *fakeEventFileRepo) Create(ctx context.Context, file *domain.EventFile) error {
	if f.createErr != nil {
		return f.createErr
	}
	file.ID = fmt.Sprintf("file-%d", f.nextID)
	f.nextID++
	f.files = append(f.files, file)
	return nil
}

func (f *fakeEventFileRepo) ListByEventRequestID(ctx context.Context, eventRequestID string) ([]*domain.EventFile, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*domain.EventFile{}
	for _, file := range f.files {
		if file.EventRequestID == eventRequestID {
			out = append(out, file)
		}
	}
	return out, nil
}

// fakeInquiryRepo is an in-memory InquiryRepository for tests.
type fakeInquiryRepo struct {
	created   []*domain.Inquiry
	nextID    int
	createErr error
	updateErr error
}

func newFakeInquiryRepo() *fakeInquiryRepo {
	return &fakeInquiryRepo{nextID: 1}
}

func (f *fakeInquiryRepo) Create(ctx context.Context, inq *domain.Inquiry) error {
	if f.createErr != nil {
		return f.createErr
	}
	inq.ID = fmt.Sprintf("inq-%d", f.nextID)
	f.nextID++
	f.created = append(f.created, inq)
	return nil
}

func (f *fakeInquiryRepo) ListByEventRequestID(ctx context.Context, eventRequestID string) ([]*domain.InquiryDetail, error) {
	out := []*domain.InquiryDetail{}
	for _, inq := range f.created {
		if inq.EventRequestID == eventRequestID {
			out = append(out, &domain.InquiryDetail{Inquiry: *inq})
		}
	}
	return out, nil
}

func (f *fakeInquiryRepo) ListByPartnerID(ctx context.Context, partnerID string) ([]*domain.InquiryWithEvent, error) {
	out := []*domain.InquiryWithEvent{}
	for _, inq := range f.created {
		if inq.PartnerID == partnerID {
			out = append(out, &domain.InquiryWithEvent{Inquiry: *inq})
		}
	}
	return out, nil
}

func (f *fakeInquiryRepo) UpdateStatus(ctx context.Context, inquiryID, partnerID, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, inq := range f.created {
		if inq.ID == inquiryID && inq.PartnerID == partnerID {
			inq.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeGenerator returns canned completions in call order.
type fakeGenerator struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (f *fakeGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) > 0 {
		resp := f.responses[0]
		if len(f.responses) > 1 {
			f.responses = f.responses[1:]
		}
		return resp, nil
	}
	return "SUBJECT: Test subject\n\nBODY:\nTest body", nil
}

// fakeMailer records sends; sendErrs maps a recipient address to a forced error.
type fakeMailer struct {
	authorizeErr error
	authorized   int
	sendErrs     map[string]error
	sent         []*domain.OutboundEmail
	nextMsgID    int
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sendErrs: make(map[string]error), nextMsgID: 1}
}

func (f *fakeMailer) Authorize(ctx context.Context) error {
	if f.authorizeErr != nil {
		return f.authorizeErr
	}
	f.authorized++
	return nil
}

func (f *fakeMailer) Send(ctx context.Context, msg *domain.OutboundEmail) (string, error) {
	if err, ok := f.sendErrs[msg.To]; ok {
		return "", err
	}
	f.sent = append(f.sent, msg)
	id := fmt.Sprintf("msg-%d", f.nextMsgID)
	f.nextMsgID++
	return id, nil
}

// fakeFetcher serves attachment bytes by URL.
type fakeFetcher struct {
	data map[string][]byte
	errs map[string]error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{data: make(map[string][]byte), errs: make(map[string]error)}
}

func (f *fakeFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if b, ok := f.data[url]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("no data for %s", url)
}

// fakePartnerRepo is an in-memory PartnerRepository for tests.
type fakePartnerRepo struct {
	byID      map[string]*domain.Partner
	nextID    int
	createErr error
	listErr   error
}

func newFakePartnerRepo() *fakePartnerRepo {
	return &fakePartnerRepo{byID: make(map[string]*domain.Partner), nextID: 1}
}

func (f *fakePartnerRepo) Create(ctx context.Context, p *domain.Partner) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = fmt.Sprintf("partner-%d", f.nextID)
	f.nextID++
	f.byID[p.ID] = p
	return nil
}

func (f *fakePartnerRepo) GetByID(ctx context.Context, id string) (*domain.Partner, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePartnerRepo) GetByUserID(ctx context.Context, userID string) (*domain.Partner, error) {
	for _, p := range f.byID {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePartnerRepo) List(ctx context.Context, filter domain.PartnerFilter, params domain.PaginationParams) ([]*domain.Partner, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	out := []*domain.Partner{}
	for _, p := range f.byID {
		if filter.ServiceType != "" && p.ServiceType != filter.ServiceType {
			continue
		}
		if filter.City != "" && !strings.EqualFold(p.City, filter.City) {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakePartnerRepo) addPartner(id, company, serviceType, contactEmail string) *domain.Partner {
	p := &domain.Partner{ID: id, CompanyName: company, ServiceType: serviceType, ContactName: "Contact " + company, ContactEmail: contactEmail, City: "Madrid"}
	f.byID[id] = p
	return p
}

// fakeFileStore backs event service tests; FetchBytes delegates to fakeFetcher.
type fakeFileStore struct {
	fakeFetcher
	uploadErr error
	uploads   []string
}

func (f *fakeFileStore) Upload(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	f.uploads = append(f.uploads, fileName)
	return "https://files.test/" + fileName, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type outreachFixture struct {
	eventRepo     *fakeEventRequestRepo
	userRepo      *fakeUserRepo
	selectionRepo *fakeSelectedPartnerRepo
	fileRepo      *fakeEventFileRepo
	inquiryRepo   *fakeInquiryRepo
	generator     *fakeGenerator
	mailer        *fakeMailer
	fetcher       *fakeFetcher
	svc           domain.OutreachService
}

func newOutreachFixture() *outreachFixture {
	f := &outreachFixture{
		eventRepo:     newFakeEventRequestRepo(),
		userRepo:      newFakeUserRepo(),
		selectionRepo: newFakeSelectedPartnerRepo(),
		fileRepo:      newFakeEventFileRepo(),
		inquiryRepo:   newFakeInquiryRepo(),
		generator:     &fakeGenerator{},
		mailer:        newFakeMailer(),
		fetcher:       newFakeFetcher(),
	}
	f.svc = NewOutreachService(
		f.eventRepo, f.userRepo, f.selectionRepo, f.fileRepo, f.inquiryRepo,
		f.generator, f.mailer, f.fetcher, testLogger(), 5*time.Second,
	)
	return f
}

func (f *outreachFixture) addEvent(organizerID, name string) *domain.EventRequest {
	e := &domain.EventRequest{
		OrganizerID: organizerID,
		EventName:   name,
		EventType:   "conference",
		Attendees:   150,
		EventDate:   time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		City:        "Madrid",
		Status:      domain.EventStatusDraft,
	}
	_ = f.eventRepo.Create(context.Background(), e)
	return e
}

func TestOutreachService_GeneratePreviews(t *testing.T) {
	ctx := context.Background()

	t.Run("one preview per selection in selection order", func(t *testing.T) {
		f := newOutreachFixture()
		event := f.addEvent("user-1", "Tech Summit")
		venue := &domain.Partner{ID: "p-venue", CompanyName: "Grand Hall", ContactName: "Ana", ContactEmail: "ana@grandhall.test"}
		catering := &domain.Partner{ID: "p-cat", CompanyName: "Tasty Co", ContactName: "Luis", ContactEmail: "luis@tasty.test"}
		f.selectionRepo.addSelection(event.ID, venue, domain.ServiceTypeVenue)
		f.selectionRepo.addSelection(event.ID, catering, domain.ServiceTypeCatering)
		f.generator.responses = []string{
			"SUBJECT: Venue inquiry\n\nBODY:\nDear Grand Hall,",
			"SUBJECT: Catering inquiry\n\nBODY:\nDear Tasty Co,",
		}

		previews, err := f.svc.GeneratePreviews(ctx, event.ID, "user-1")
		require.NoError(t, err)
		require.Len(t, previews, 2)
		assert.Equal(t, "p-venue", previews[0].PartnerID)
		assert.Equal(t, "Grand Hall", previews[0].PartnerName)
		assert.Equal(t, "ana@grandhall.test", previews[0].PartnerEmail)
		assert.Equal(t, "Venue inquiry", previews[0].Subject)
		assert.Equal(t, "Dear Grand Hall,", previews[0].Content)
		assert.Equal(t, "p-cat", previews[1].PartnerID)
		assert.Equal(t, "Catering inquiry", previews[1].Subject)
		assert.Equal(t, 2, f.generator.calls)
		// Nothing was sent or persisted.
		assert.Empty(t, f.mailer.sent)
		assert.Empty(t, f.inquiryRepo.created)
	})

	t.Run("attachment flag only for merchandise with files", func(t *testing.T) {
		f := newOutreachFixture()
		event := f.addEvent("user-1", "Expo")
		merch := &domain.Partner{ID: "p-merch", CompanyName: "PrintIt", ContactEmail: "hi@printit.test"}
		catering := &domain.Partner{ID: "p-cat", CompanyName: "Tasty Co", ContactEmail: "luis@tasty.test"}
		f.selectionRepo.addSelection(event.ID, merch, domain.ServiceTypeMerchandise)
		f.selectionRepo.addSelection(event.ID, catering, domain.ServiceTypeCatering)
		f.fileRepo.files = []*domain.EventFile{{EventRequestID: event.ID, FileName: "logo.png", FileURL: "https://files.test/logo.png", MimeType: "image/png"}}

		previews, err := f.svc.GeneratePreviews(ctx, event.ID, "user-1")
		require.NoError(t, err)
		require.Len(t, previews, 2)
		assert.True(t, previews[0].HasAttachment, "merchandise with files gets the attachment flag")
		assert.False(t, previews[1].HasAttachment, "non-merchandise never gets the attachment flag")
	})

	t.Run("merchandise without files has no attachment flag", func(t *testing.T) {
		f := newOutreachFixture()
		event := f.addEvent("user-1", "Expo")
		merch := &domain.Partner{ID: "p-merch", CompanyName: "PrintIt", ContactEmail: "hi@printit.test"}
		f.selectionRepo.addSelection(event.ID, merch, domain.ServiceTypeMerchandise)

		previews, err := f.svc.GeneratePreviews(ctx, event.ID, "user-1")
		require.NoError(t, err)
		require.Len(t, previews, 1)
		assert.False(t, previews[0].HasAttachment)
	})

	t.Run("missing markers fall back to default subject and raw body", func(t *testing.T) {
		f := newOutreachFixture()
		event := f.addEvent("user-1", "Spring Gala")
		venue := &domain.Partner{ID: "p-venue", CompanyName: "Grand Hall", ContactEmail: "ana@grandhall.test"}
		f.selectionRepo.addSelection(event.ID, venue, domain.ServiceTypeVenue)
		f.generator.responses = []string{"Hello, we would love to host your event."}

		previews, err := f.svc.GeneratePreviews(ctx, event.ID, "user-1")
		require.NoError(t, err)
		require.Len(t, previews, 1)
		assert.Equal(t, "Inquiry: Spring Gala", previews[0].Subject)
		assert.Equal(t, "Hello, we would love to host your event.", previews[0].Content)
	})

	t.Run("generator failure aborts the whole batch", func(t *testing.T) {
		f := newOutreachFixture()
		event := f.addEvent("user-1", "Expo")
		venue := &domain.Partner{ID: "p-venue", CompanyName: "Grand Hall", ContactEmail: "ana@grandhall.test"}
		f.selectionRepo.addSelection(event.ID, venue, domain.ServiceTypeVenue)
		f.generator.err = errors.New("rate limited")

		previews, err := f.svc.GeneratePreviews(ctx, event.ID, "user-1")
		require.Error(t, err)
		assert.Nil(t, previews)
	})

	t.Run("no selections", func(t *testing.T) {
		f := newOutreachFixture()
		event := f.addEvent("user-1", "Expo")
		_, err := f.svc.GeneratePreviews(ctx, event.ID, "user-1")
		require.Error(t, err)
		require.True(t, errors.Is(err, domain.ErrNoPartnersSelected))
	})

	t.Run("event not found", func(t *testing.T) {
		f := newOutreachFixture()
		_, err := f.svc.GeneratePreviews(ctx, "ev-missing", "user-1")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("forbidden for non-owner", func(t *testing.T) {
		f := newOutreachFixture()
		event := f.addEvent("user-1", "Expo")
		_, err := f.svc.GeneratePreviews(ctx, event.ID, "user-2")
		require.True(t, errors.Is(err, domain.ErrForbidden))
	})
}

func TestOutreachService_Dispatch(t *testing.T) {
	ctx := context.Background()

	previewFor := func(partnerID, email string) *domain.EmailPreview {
		return &domain.EmailPreview{
			PartnerID:    partnerID,
			PartnerName:  "Partner " + partnerID,
			PartnerEmail: email,
			Subject:      "Inquiry",
			Content:      "Hello there,\nWe have an event.",
		}
	}

	t.Run("all sends succeed and each gets an inquiry row", func(t *testing.T) {
		f := newOutreachFixture()
		f.userRepo.addUser("user-1", "organizer@example.test")
		event := f.addEvent("user-1", "Tech Summit")
		previews := []*domain.EmailPreview{
			previewFor("p-1", "one@partner.test"),
			previewFor("p-2", "two@partner.test"),
		}

		summary, err := f.svc.Dispatch(ctx, event.ID, "user-1", previews)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.SentCount)
		require.Len(t, summary.Sent, 2)
		assert.Empty(t, summary.Failed)
		assert.Equal(t, 1, f.mailer.authorized, "token refresh happens once per dispatch")

		require.Len(t, f.mailer.sent, 2)
		for _, msg := range f.mailer.sent {
			assert.Equal(t, "organizer@example.test", msg.ReplyTo)
			assert.Contains(t, msg.HTML, "<br>")
		}
		require.Len(t, f.inquiryRepo.created, 2)
		assert.Equal(t, domain.InquiryStatusSent, f.inquiryRepo.created[0].Status)
		require.NotNil(t, f.inquiryRepo.created[0].MessageID)
		assert.Equal(t, summary.Sent[0].MessageID, *f.inquiryRepo.created[0].MessageID)
	})

	t.Run("one recipient failing never blocks the rest", func(t *testing.T) {
		f := newOutreachFixture()
		f.userRepo.addUser("user-1", "organizer@example.test")
		event := f.addEvent("user-1", "Tech Summit")
		f.mailer.sendErrs["two@partner.test"] = errors.New("mailbox rejected")
		previews := []*domain.EmailPreview{
			previewFor("p-1", "one@partner.test"),
			previewFor("p-2", "two@partner.test"),
			previewFor("p-3", "three@partner.test"),
		}

		summary, err := f.svc.Dispatch(ctx, event.ID, "user-1", previews)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.SentCount)
		require.Len(t, summary.Failed, 1)
		assert.Equal(t, "p-2", summary.Failed[0].PartnerID)
		assert.Equal(t, "two@partner.test", summary.Failed[0].PartnerEmail)
		assert.Contains(t, summary.Failed[0].Reason, "mailbox rejected")
		// Inquiry rows exist only for the successes.
		require.Len(t, f.inquiryRepo.created, 2)
		for _, inq := range f.inquiryRepo.created {
			assert.NotEqual(t, "p-2", inq.PartnerID)
		}
	})

	t.Run("failed token refresh aborts with zero sends", func(t *testing.T) {
		f := newOutreachFixture()
		f.userRepo.addUser("user-1", "organizer@example.test")
		event := f.addEvent("user-1", "Tech Summit")
		f.mailer.authorizeErr = errors.New("invalid refresh token")

		summary, err := f.svc.Dispatch(ctx, event.ID, "user-1", []*domain.EmailPreview{previewFor("p-1", "one@partner.test")})
		require.Error(t, err)
		assert.Nil(t, summary)
		assert.Empty(t, f.mailer.sent)
		assert.Empty(t, f.inquiryRepo.created)
	})

	t.Run("failed organizer email lookup aborts with zero sends", func(t *testing.T) {
		f := newOutreachFixture()
		event := f.addEvent("user-1", "Tech Summit")
		f.userRepo.emailErr = errors.New("db down")

		summary, err := f.svc.Dispatch(ctx, event.ID, "user-1", []*domain.EmailPreview{previewFor("p-1", "one@partner.test")})
		require.Error(t, err)
		assert.Nil(t, summary)
		assert.Empty(t, f.mailer.sent)
	})

	t.Run("attachment fetch failure abandons that recipient only", func(t *testing.T) {
		f := newOutreachFixture()
		f.userRepo.addUser("user-1", "organizer@example.test")
		event := f.addEvent("user-1", "Expo")
		f.fileRepo.files = []*domain.EventFile{{EventRequestID: event.ID, FileName: "logo.png", FileURL: "https://files.test/logo.png", MimeType: "image/png"}}
		f.fetcher.errs["https://files.test/logo.png"] = errors.New("404 from storage")

		merchPreview := previewFor("p-merch", "merch@partner.test")
		merchPreview.HasAttachment = true
		previews := []*domain.EmailPreview{
			merchPreview,
			previewFor("p-venue", "venue@partner.test"),
		}

		summary, err := f.svc.Dispatch(ctx, event.ID, "user-1", previews)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.SentCount)
		require.Len(t, summary.Failed, 1)
		assert.Equal(t, "p-merch", summary.Failed[0].PartnerID)
		assert.Contains(t, summary.Failed[0].Reason, "fetch attachments")
		require.Len(t, f.mailer.sent, 1)
		assert.Equal(t, "venue@partner.test", f.mailer.sent[0].To)
	})

	t.Run("attachments are fetched and included for flagged previews", func(t *testing.T) {
		f := newOutreachFixture()
		f.userRepo.addUser("user-1", "organizer@example.test")
		event := f.addEvent("user-1", "Spring Gala")
		f.fileRepo.files = []*domain.EventFile{{EventRequestID: event.ID, FileName: "logo.png", FileURL: "https://files.test/logo.png", MimeType: "image/png"}}
		f.fetcher.data["https://files.test/logo.png"] = []byte("png-bytes")

		merchPreview := previewFor("p-merch", "merch@partner.test")
		merchPreview.HasAttachment = true
		summary, err := f.svc.Dispatch(ctx, event.ID, "user-1", []*domain.EmailPreview{merchPreview})
		require.NoError(t, err)
		assert.Equal(t, 1, summary.SentCount)
		require.Len(t, f.mailer.sent, 1)
		require.Len(t, f.mailer.sent[0].Attachments, 1)
		assert.Equal(t, "logo.png", f.mailer.sent[0].Attachments[0].Filename)
		assert.Equal(t, []byte("png-bytes"), f.mailer.sent[0].Attachments[0].Content)
		assert.Equal(t, "image/png", f.mailer.sent[0].Attachments[0].ContentType)
		require.Len(t, f.inquiryRepo.created, 1)
		assert.True(t, f.inquiryRepo.created[0].HasAttachment)
	})

	t.Run("inquiry insert failure still counts the send", func(t *testing.T) {
		f := newOutreachFixture()
		f.userRepo.addUser("user-1", "organizer@example.test")
		event := f.addEvent("user-1", "Expo")
		f.inquiryRepo.createErr = errors.New("insert failed")

		summary, err := f.svc.Dispatch(ctx, event.ID, "user-1", []*domain.EmailPreview{previewFor("p-1", "one@partner.test")})
		require.NoError(t, err)
		assert.Equal(t, 1, summary.SentCount)
		assert.Empty(t, summary.Failed)
	})

	t.Run("dispatch is not idempotent", func(t *testing.T) {
		f := newOutreachFixture()
		f.userRepo.addUser("user-1", "organizer@example.test")
		event := f.addEvent("user-1", "Expo")
		previews := []*domain.EmailPreview{previewFor("p-1", "one@partner.test")}

		_, err := f.svc.Dispatch(ctx, event.ID, "user-1", previews)
		require.NoError(t, err)
		_, err = f.svc.Dispatch(ctx, event.ID, "user-1", previews)
		require.NoError(t, err)
		assert.Len(t, f.mailer.sent, 2)
		assert.Len(t, f.inquiryRepo.created, 2)
	})

	t.Run("forbidden for non-owner", func(t *testing.T) {
		f := newOutreachFixture()
		event := f.addEvent("user-1", "Expo")
		_, err := f.svc.Dispatch(ctx, event.ID, "user-2", []*domain.EmailPreview{previewFor("p-1", "one@partner.test")})
		require.True(t, errors.Is(err, domain.ErrForbidden))
	})
}

func TestOutreachService_EndToEnd(t *testing.T) {
	// Spring Gala: preview a merchandise partner with an uploaded logo, then
	// dispatch the edited preview and check the full outgoing message.
	ctx := context.Background()
	f := newOutreachFixture()
	f.userRepo.addUser("user-1", "gala.organizer@example.test")
	event := f.addEvent("user-1", "Spring Gala")
	budget := 12000.0
	event.Budget = &budget

	merch := &domain.Partner{ID: "p-merch", CompanyName: "PrintIt", ContactName: "Mia", ContactEmail: "mia@printit.test"}
	f.selectionRepo.addSelection(event.ID, merch, domain.ServiceTypeMerchandise)
	f.fileRepo.files = []*domain.EventFile{{EventRequestID: event.ID, FileName: "logo.png", FileURL: "https://files.test/logo.png", FileSize: 9, MimeType: "image/png"}}
	f.fetcher.data["https://files.test/logo.png"] = []byte("png-bytes")
	f.generator.responses = []string{"SUBJECT: Merch for Spring Gala\n\nBODY:\nHi Mia,\nCould you quote 150 shirts?"}

	previews, err := f.svc.GeneratePreviews(ctx, event.ID, "user-1")
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.True(t, previews[0].HasAttachment)
	assert.Contains(t, f.generator.prompts[0], "Spring Gala")
	assert.Contains(t, f.generator.prompts[0], "Budget: $12000")
	assert.Contains(t, f.generator.prompts[0], "design files are attached")

	// The organizer tweaks the subject before sending.
	previews[0].Subject = "Merchandise for Spring Gala 2026"

	summary, err := f.svc.Dispatch(ctx, event.ID, "user-1", previews)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SentCount)

	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	assert.Equal(t, "mia@printit.test", msg.To)
	assert.Equal(t, "gala.organizer@example.test", msg.ReplyTo)
	assert.Equal(t, "Merchandise for Spring Gala 2026", msg.Subject)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "logo.png", msg.Attachments[0].Filename)

	require.Len(t, f.inquiryRepo.created, 1)
	inq := f.inquiryRepo.created[0]
	assert.Equal(t, event.ID, inq.EventRequestID)
	assert.Equal(t, "p-merch", inq.PartnerID)
	assert.Equal(t, "Merchandise for Spring Gala 2026", inq.EmailSubject)
	assert.True(t, inq.HasAttachment)
	assert.False(t, inq.SentAt.IsZero())
}
