package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"church-cms/internal/adapter/http/middleware"
	"church-cms/internal/core/domain"
	"church-cms/internal/core/ports"
	"church-cms/internal/core/ports/mocks"
	"church-cms/pkg/apperror"
	"church-cms/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJSONContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if body != "" {
		c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		c.Request = httptest.NewRequest(method, target, nil)
	}
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Sermon Handler Tests ---

func TestSermonCreate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockSermonService(ctrl)
	h := NewSermonHandler(mockSvc)

	mockSvc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, s *domain.Sermon) error {
			assert.Equal(t, "Grace &amp; Truth", s.Title)
			assert.Equal(t, 2024, s.Date.Year())
			s.ID = uuid.New()
			return nil
		})

	c, w := newJSONContext(http.MethodPost, "/api/sermons", `{"title":"  Grace & Truth ","date":"2024-05-05"}`)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "Grace &amp; Truth", resp["title"])
	assert.NotEmpty(t, resp["id"])
	assert.NotEmpty(t, c.GetString(middleware.CtxAuditResourceID))
}

func TestSermonCreate_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewSermonHandler(mocks.NewMockSermonService(ctrl))

	c, w := newJSONContext(http.MethodPost, "/api/sermons", `{"title":"   "}`)
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "VAL_001", resp["code"])
	fields, ok := resp["errors"].([]interface{})
	require.True(t, ok)
	assert.Len(t, fields, 2)
}

func TestSermonGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockSermonService(ctrl)
	h := NewSermonHandler(mockSvc)
	id := uuid.New()

	mockSvc.EXPECT().Get(gomock.Any(), id).Return(nil, apperror.ErrNotFound("Sermon"))

	c, w := newJSONContext(http.MethodGet, "/api/sermons/"+id.String(), "")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Sermon not found", decodeBody(t, w)["error"])
}

func TestSermonGet_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewSermonHandler(mocks.NewMockSermonService(ctrl))

	c, w := newJSONContext(http.MethodGet, "/api/sermons/abc", "")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_002", decodeBody(t, w)["code"])
}

func TestSermonList_Paginated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockSermonService(ctrl)
	h := NewSermonHandler(mockSvc)

	mockSvc.EXPECT().List(gomock.Any(), pagination.Params{Page: 2, Limit: 5}).
		Return([]domain.Sermon{{ID: uuid.New(), Title: "A"}}, int64(6), nil)

	c, w := newJSONContext(http.MethodGet, "/api/sermons?page=2&limit=5", "")
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Len(t, resp["data"], 1)
	meta := resp["pagination"].(map[string]interface{})
	assert.Equal(t, float64(6), meta["total"])
	assert.Equal(t, float64(2), meta["totalPages"])
	assert.Equal(t, false, meta["hasNextPage"])
	assert.Equal(t, true, meta["hasPrevPage"])
}

func TestSermonList_EmptyIsArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockSermonService(ctrl)
	h := NewSermonHandler(mockSvc)

	mockSvc.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, int64(0), nil)

	c, w := newJSONContext(http.MethodGet, "/api/sermons", "")
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestSermonDownload_Redirects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockSermonService(ctrl)
	h := NewSermonHandler(mockSvc)
	id := uuid.New()

	mockSvc.EXPECT().DownloadURL(gomock.Any(), id, domain.SermonFileAudio).
		Return("https://cdn.example.org/a.mp3", nil)

	c, w := newJSONContext(http.MethodGet, "/", "")
	c.Params = gin.Params{{Key: "id", Value: id.String()}, {Key: "type", Value: "audio"}}
	h.Download(c)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://cdn.example.org/a.mp3", w.Header().Get("Location"))
}

func TestSermonDownload_BadType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewSermonHandler(mocks.NewMockSermonService(ctrl))

	c, w := newJSONContext(http.MethodGet, "/", "")
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}, {Key: "type", Value: "pdf"}}
	h.Download(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSermonDelete_Message(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockSermonService(ctrl)
	h := NewSermonHandler(mockSvc)
	id := uuid.New()

	mockSvc.EXPECT().Delete(gomock.Any(), id).Return(nil)

	c, w := newJSONContext(http.MethodDelete, "/", "")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sermon deleted successfully", decodeBody(t, w)["message"])
}

// --- Event Handler Tests ---

func TestEventSeed(t *testing.T) {
	tests := []struct {
		name     string
		inserted int
		message  string
	}{
		{"seeded", 3, "Events seeded successfully"},
		{"already present", 0, "Events already exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := mocks.NewMockEventService(ctrl)
			h := NewEventHandler(mockSvc)
			mockSvc.EXPECT().SeedDefaults(gomock.Any()).Return(tt.inserted, nil)

			c, w := newJSONContext(http.MethodPost, "/api/events/seed", "")
			h.Seed(c)

			assert.Equal(t, http.StatusOK, w.Code)
			resp := decodeBody(t, w)
			assert.Equal(t, tt.message, resp["message"])
			assert.Equal(t, float64(tt.inserted), resp["insertedCount"])
		})
	}
}

func TestEventCreate_BadTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewEventHandler(mocks.NewMockEventService(ctrl))

	c, w := newJSONContext(http.MethodPost, "/api/events",
		`{"title":"Vigil","description":"All night","date":"2024-12-31","time":"25:00"}`)
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"time"`)
}

// --- Testimonial Handler Tests ---

func TestTestimonialList_AdminSeesUnapproved(t *testing.T) {
	tests := []struct {
		name     string
		identity *domain.Identity
		want     bool
	}{
		{"anonymous", nil, false},
		{"user", &domain.Identity{UserID: "u1"}, false},
		{"admin", &domain.Identity{UserID: "a1", Role: domain.RoleAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := mocks.NewMockTestimonialService(ctrl)
			h := NewTestimonialHandler(mockSvc)
			mockSvc.EXPECT().List(gomock.Any(), gomock.Any(), tt.want).Return(nil, int64(0), nil)

			c, w := newJSONContext(http.MethodGet, "/api/testimonials", "")
			if tt.identity != nil {
				c.Set(middleware.CtxIdentity, tt.identity)
			}
			h.List(c)

			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestTestimonialCreate_PublicSubmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockTestimonialService(ctrl)
	h := NewTestimonialHandler(mockSvc)

	approved := true
	mockSvc.EXPECT().Submit(gomock.Any(), gomock.Any(), false, &approved).Return(nil)

	c, w := newJSONContext(http.MethodPost, "/api/testimonials",
		`{"name":"Ada","testimonial":"<b>Healed</b>","approved":true}`)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Healed", decodeBody(t, w)["testimonial"])
}

func TestTestimonialUpdate_ApprovalAuditAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockTestimonialService(ctrl)
	h := NewTestimonialHandler(mockSvc)
	id := uuid.New()

	mockSvc.EXPECT().Update(gomock.Any(), id, gomock.Any()).
		Return(&domain.Testimonial{ID: id, Approved: true}, nil)

	c, w := newJSONContext(http.MethodPut, "/", `{"approved":true}`)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	action, _ := c.Get(middleware.CtxAuditAction)
	assert.Equal(t, domain.AuditActionApprove, action)
}

// --- Prayer Handler Tests ---

func TestPrayerList_InvalidStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPrayerHandler(mocks.NewMockPrayerService(ctrl))

	c, w := newJSONContext(http.MethodGet, "/api/prayers?status=lost", "")
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPrayerList_StatusFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockPrayerService(ctrl)
	h := NewPrayerHandler(mockSvc)

	mockSvc.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, p ports.PrayerListParams) ([]domain.PrayerRequest, int64, error) {
			require.NotNil(t, p.Status)
			assert.Equal(t, domain.PrayerStatus("answered"), *p.Status)
			return nil, 0, nil
		})

	c, w := newJSONContext(http.MethodGet, "/api/prayers?status=answered", "")
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

// --- Donation Handler Tests ---

func TestDonationInitialize_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockDonationService(ctrl)
	h := NewDonationHandler(mockSvc, "https://church.example.org/")

	mockSvc.EXPECT().Initialize(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, req ports.InitializeDonationRequest) (*ports.InitializeDonationResult, error) {
			assert.True(t, req.Amount.Equal(decimal.NewFromInt(5000)))
			assert.Equal(t, "ada@example.org", req.Email)
			assert.Equal(t, "Ada", req.FullName)
			assert.Empty(t, req.Purpose)
			assert.Equal(t, "https://church.example.org", req.BaseURL)
			return &ports.InitializeDonationResult{
				PaymentLink:          "https://checkout.example/pay/1",
				TransactionReference: "DON-1",
			}, nil
		})

	c, w := newJSONContext(http.MethodPost, "/api/donations/initialize",
		`{"amount":5000,"email":" ADA@example.org ","fullName":"Ada"}`)
	h.Initialize(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "https://checkout.example/pay/1", resp["paymentLink"])
	assert.Equal(t, "DON-1", resp["transactionReference"])
}

func TestDonationInitialize_InvalidAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewDonationHandler(mocks.NewMockDonationService(ctrl), "")

	c, w := newJSONContext(http.MethodPost, "/api/donations/initialize",
		`{"amount":0,"email":"ada@example.org","fullName":"Ada"}`)
	h.Initialize(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"amount"`)
}

func TestDonationInitialize_DerivedBaseURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockDonationService(ctrl)
	h := NewDonationHandler(mockSvc, "")

	mockSvc.EXPECT().Initialize(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, req ports.InitializeDonationRequest) (*ports.InitializeDonationResult, error) {
			assert.Equal(t, "https://church.example.org", req.BaseURL)
			return &ports.InitializeDonationResult{}, nil
		})

	c, w := newJSONContext(http.MethodPost, "/api/donations/initialize",
		`{"amount":10,"email":"ada@example.org","fullName":"Ada"}`)
	c.Request.Host = "church.example.org"
	c.Request.Header.Set("X-Forwarded-Proto", "https")
	h.Initialize(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDonationWebhook(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"accepted", nil, http.StatusOK},
		{"bad signature", apperror.ErrInvalidSignature(), http.StatusUnauthorized},
		{"gateway down", apperror.ErrUpstream("Payment verification failed", errors.New("dial tcp")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := mocks.NewMockDonationService(ctrl)
			h := NewDonationHandler(mockSvc, "")
			payload := `{"event":"charge.completed","data":{"id":1,"tx_ref":"DON-1"}}`

			mockSvc.EXPECT().HandleWebhook(gomock.Any(), []byte(payload), "secret-hash").Return(tt.svcErr)

			c, w := newJSONContext(http.MethodPost, "/api/donations/webhook", payload)
			c.Request.Header.Set(HeaderWebhookSignature, "secret-hash")
			h.Webhook(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.svcErr == nil {
				assert.Equal(t, "success", decodeBody(t, w)["status"])
			}
		})
	}
}

func TestDonationVerify_PollStatus(t *testing.T) {
	tests := []struct {
		status domain.DonationStatus
		want   string
	}{
		{domain.DonationStatusCompleted, "success"},
		{domain.DonationStatusFailed, "failed"},
		{domain.DonationStatusPending, "pending"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := mocks.NewMockDonationService(ctrl)
			h := NewDonationHandler(mockSvc, "")

			mockSvc.EXPECT().Verify(gomock.Any(), "DON-1").Return(&domain.Donation{
				TransactionReference: "DON-1",
				Amount:               decimal.NewFromInt(100),
				Status:               tt.status,
				CreatedAt:            time.Now(),
			}, nil)

			c, w := newJSONContext(http.MethodGet, "/", "")
			c.Params = gin.Params{{Key: "transactionReference", Value: "DON-1"}}
			h.Verify(c)

			assert.Equal(t, http.StatusOK, w.Code)
			resp := decodeBody(t, w)
			assert.Equal(t, tt.want, resp["status"])
			donation := resp["donation"].(map[string]interface{})
			assert.Equal(t, "DON-1", donation["transactionReference"])
		})
	}
}

func TestDonationList_InvalidStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewDonationHandler(mocks.NewMockDonationService(ctrl), "")

	c, w := newJSONContext(http.MethodGet, "/api/donations?status=refunded", "")
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDonationStats_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockDonationService(ctrl)
	h := NewDonationHandler(mockSvc, "")

	mockSvc.EXPECT().Stats(gomock.Any()).Return(&domain.DonationStats{
		Total: 3, Completed: 2, Pending: 1,
		Totals: []domain.CurrencyTotal{{Currency: "NGN", Count: 2, Amount: decimal.NewFromInt(1500)}},
	}, nil)

	c, w := newJSONContext(http.MethodGet, "/api/donations/stats", "")
	h.Stats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, float64(3), resp["total"])
}

// --- Settings / Contact Handler Tests ---

func TestSettingsUpdate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockSettingsService(ctrl)
	h := NewSettingsHandler(mockSvc)

	mockSvc.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, p ports.SettingsPatch) (*domain.SiteSettings, error) {
			require.NotNil(t, p.LiveStreamURL)
			assert.Equal(t, "https://youtube.com/live", *p.LiveStreamURL)
			return &domain.SiteSettings{LiveStreamURL: *p.LiveStreamURL}, nil
		})

	c, w := newJSONContext(http.MethodPut, "/api/settings", `{"liveStreamUrl":"https://youtube.com/live"}`)
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestContactSend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockContactService(ctrl)
	h := NewContactHandler(mockSvc)

	mockSvc.EXPECT().Send(gomock.Any(), ports.ContactRequest{
		FullName: "Ada",
		Email:    "ada@example.org",
		Message:  "Hello &lt;there&gt;",
	}).Return(nil)

	c, w := newJSONContext(http.MethodPost, "/api/contact",
		`{"fullName":"Ada","email":"ada@example.org","message":"Hello <there>"}`)
	h.Send(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["ok"])
}

func TestContactSend_MailNotConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockContactService(ctrl)
	h := NewContactHandler(mockSvc)

	mockSvc.EXPECT().Send(gomock.Any(), gomock.Any()).Return(apperror.ErrMailNotConfigured())

	c, w := newJSONContext(http.MethodPost, "/api/contact",
		`{"fullName":"Ada","email":"ada@example.org","message":"Hi"}`)
	h.Send(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "SYS_003", decodeBody(t, w)["code"])
}

// --- Upload Handler Tests ---

func multipartRequest(t *testing.T, target, field string, files map[string]string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockUploadService(ctrl)
	h := NewUploadHandler(mockSvc, 1024)

	mockSvc.EXPECT().Upload(gomock.Any(), gomock.Any(), ports.UploadOptions{Bucket: "images", Folder: "banners"}).DoAndReturn(
		func(_ interface{}, f ports.UploadFile, _ ports.UploadOptions) (*domain.StoredObject, error) {
			assert.Equal(t, "photo.png", f.Name)
			assert.Equal(t, []byte("png-bytes"), f.Data)
			return &domain.StoredObject{
				URL: "https://cdn/images/banners/x.png", Path: "banners/x.png",
				Bucket: "images", Size: 9, MimeType: "image/png",
			}, nil
		})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/upload", "file",
		map[string]string{"photo.png": "png-bytes"},
		map[string]string{"bucket": "images", "folder": "banners"})
	h.Upload(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "banners/x.png", resp["path"])
	assert.Equal(t, "image/png", resp["mimetype"])
}

func TestUpload_NoFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewUploadHandler(mocks.NewMockUploadService(ctrl), 1024)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/upload", "other", map[string]string{"a.png": "x"}, nil)
	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UPL_001", decodeBody(t, w)["code"])
}

func TestUpload_NotMultipart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewUploadHandler(mocks.NewMockUploadService(ctrl), 1024)

	c, w := newJSONContext(http.MethodPost, "/api/upload", `{}`)
	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UPL_001", decodeBody(t, w)["code"])
}

func TestUpload_ReadsOnePastLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockUploadService(ctrl)
	h := NewUploadHandler(mockSvc, 4)

	mockSvc.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, f ports.UploadFile, _ ports.UploadOptions) (*domain.StoredObject, error) {
			assert.Len(t, f.Data, 5)
			return nil, apperror.ErrFileTooLarge()
		})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/upload", "file", map[string]string{"big.png": "0123456789"}, nil)
	h.Upload(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestUploadMultiple_Results(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockUploadService(ctrl)
	h := NewUploadHandler(mockSvc, 1024)

	mockSvc.EXPECT().UploadMany(gomock.Any(), gomock.Len(2), gomock.Any()).Return([]ports.UploadResult{
		{OriginalName: "a.png", Success: true, Object: &domain.StoredObject{Path: "a.png"}},
		{OriginalName: "b.exe", Success: false, Error: "File type not allowed"},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/api/upload/multiple", "files",
		map[string]string{"a.png": "x", "b.exe": "y"}, nil)
	h.UploadMultiple(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Len(t, resp["results"], 2)
}

func TestUploadDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockUploadService(ctrl)
	h := NewUploadHandler(mockSvc, 1024)

	mockSvc.EXPECT().Delete(gomock.Any(), "images", "banners/x.png").Return(nil)

	c, w := newJSONContext(http.MethodDelete, "/api/upload", `{"bucket":"images","path":"banners/x.png"}`)
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "File deleted successfully", resp["message"])
}

// --- System Handler Tests ---

type readyFlag bool

func (r readyFlag) Ready() bool { return bool(r) }

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	redisCheck := mocks.NewMockHealthChecker(ctrl)
	redisCheck.EXPECT().Name().Return("redis").AnyTimes()
	redisCheck.EXPECT().Ping(gomock.Any()).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
	HealthCheck(readyFlag(true), time.Now().Add(-time.Minute), redisCheck)(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "connected", resp["database"])
	assert.GreaterOrEqual(t, resp["uptime"].(float64), float64(59))
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
	HealthCheck(readyFlag(false), time.Now())(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "degraded", resp["status"])
	assert.Equal(t, "disconnected", resp["database"])
}

func TestPublicConfig(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/config", nil)
	PublicConfig("https://auth.example.org", "anon-key")(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "https://auth.example.org", resp["supabaseUrl"])
	assert.Equal(t, "anon-key", resp["supabaseKey"])
	assert.Len(t, resp, 2)
}

func TestSwaggerUI(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/swagger", nil)
	SwaggerUI(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")
}

func TestSwaggerSpec_Loaded(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/swagger/spec", nil)
	SwaggerSpec([]byte("openapi: 3.0.3"))(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "openapi: 3.0.3", w.Body.String())
}

func TestSwaggerSpec_NotLoaded(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/swagger/spec", nil)
	SwaggerSpec(nil)(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
