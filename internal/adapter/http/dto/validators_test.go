package dto

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func fieldNames(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Field())
	}
	return out
}

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsAndEscapes(t *testing.T) {
	req := ContactRequest{
		FullName: "  Ada <b>Obi</b>  ",
		Email:    "  Ada@Example.COM ",
		Message:  "hello & <script>alert('x')</script>",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "Ada &lt;b&gt;Obi&lt;/b&gt;", req.FullName)
	assert.Equal(t, "ada@example.com", req.Email)
	assert.Contains(t, req.Message, "&lt;script&gt;")
	assert.NotContains(t, req.Message, "<script>")
}

func TestSanitizeStruct_ModesByTag(t *testing.T) {
	req := BlogRequest{
		Title:   "Grace",
		Content: `<p onclick="x()">Hi <a href="https://church.org" target="_blank">us</a></p><script>bad()</script>`,
		Image:   " https://cdn.church.org/a.jpg?w=1&h=2 ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, `<p>Hi <a href="https://church.org">us</a></p>`, req.Content)
	assert.Equal(t, "https://cdn.church.org/a.jpg?w=1&h=2", req.Image)
}

func TestSanitizeStruct_StripsTagsFromLongText(t *testing.T) {
	req := TestimonialRequest{Name: "Ada", Testimonial: "<b>Healed</b> by grace"}
	SanitizeStruct(&req)
	assert.Equal(t, "Healed by grace", req.Testimonial)
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	title := "  Fish <&> Loaves  "
	req := SermonUpdateRequest{Title: &title}
	SanitizeStruct(&req)
	assert.Equal(t, "Fish &lt;&amp;&gt; Loaves", *req.Title)
	assert.Nil(t, req.Speaker)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	req := ContactRequest{FullName: " x "}
	SanitizeStruct(req)
	assert.Equal(t, " x ", req.FullName)
}

// --- Bind tests ---

func TestBind_Donation(t *testing.T) {
	var req InitializeDonationRequest
	err := Bind(jsonRequest(`{"amount": 50, "email": " Donor@Mail.com ", "fullName": " Ada "}`), &req)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(50).Equal(req.Amount))
	assert.Equal(t, "donor@mail.com", req.Email)
	assert.Equal(t, "Ada", req.FullName)
}

func TestBind_DonationRejectsBadAmounts(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero", `{"amount": 0, "email": "a@b.co", "fullName": "Ada"}`},
		{"negative", `{"amount": -5, "email": "a@b.co", "fullName": "Ada"}`},
		{"missing", `{"email": "a@b.co", "fullName": "Ada"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req InitializeDonationRequest
			err := Bind(jsonRequest(tt.body), &req)
			require.Error(t, err)
			assert.Contains(t, fieldNames(err), "amount")
		})
	}
}

func TestBind_ReportsJSONFieldNames(t *testing.T) {
	var req InitializeDonationRequest
	err := Bind(jsonRequest(`{"amount": 10, "email": "nope", "fullName": "   "}`), &req)
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"email", "fullName"}, fieldNames(err))
}

func TestBind_LengthCheckedBeforeEscaping(t *testing.T) {
	var req ContactRequest
	name := strings.Repeat("&", 200)
	err := Bind(jsonRequest(`{"fullName":"`+name+`","email":"a@b.co","message":"hi"}`), &req)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("&amp;", 200), req.FullName)
}

func TestBind_EmptyBody(t *testing.T) {
	var req ContactRequest
	err := Bind(jsonRequest(""), &req)
	assert.Error(t, err)
}

func TestBind_EventTimeAndDate(t *testing.T) {
	var req EventRequest
	err := Bind(jsonRequest(`{"title":"Vigil","description":"All night","date":"2024-06-01","time":"22:30"}`), &req)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), req.Date.Time)

	var bad EventRequest
	err = Bind(jsonRequest(`{"title":"Vigil","description":"All night","date":"2024-06-01","time":"25:00"}`), &bad)
	require.Error(t, err)
	assert.Equal(t, []string{"time"}, fieldNames(err))
}

func TestBind_RejectsNonHTTPURL(t *testing.T) {
	var req SermonRequest
	err := Bind(jsonRequest(`{"title":"Faith","date":"2024-06-02T09:00:00Z","audioUrl":"javascript:alert(1)"}`), &req)
	require.Error(t, err)
	assert.Equal(t, []string{"audioUrl"}, fieldNames(err))
}

func TestBind_PrayerStatus(t *testing.T) {
	var req PrayerUpdateRequest
	require.NoError(t, Bind(jsonRequest(`{"status":"answered"}`), &req))
	patch := req.ToPatch()
	require.NotNil(t, patch.Status)
	assert.EqualValues(t, "answered", *patch.Status)

	var bad PrayerUpdateRequest
	assert.Error(t, Bind(jsonRequest(`{"status":"forgotten"}`), &bad))
}

func TestBind_TeamSocialLinks(t *testing.T) {
	var req TeamMemberRequest
	err := Bind(jsonRequest(`{"name":"Pastor Ade","socialLinks":{"twitter":"ftp://x"}}`), &req)
	assert.Error(t, err)

	var ok TeamMemberRequest
	require.NoError(t, Bind(jsonRequest(`{"name":"Pastor Ade","socialLinks":{"twitter":"https://x.com/ade"}}`), &ok))
	assert.Equal(t, "https://x.com/ade", ok.SocialLinks["twitter"])
}

// --- Date ---

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2024-05-12", "2024-05-12T10:00:00Z", "2024-05-12T10:00:00.5+01:00", "2024-05-12T10:00"} {
		_, err := ParseDate(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseDate("12/05/2024")
	assert.Error(t, err)
}

func TestDate_NullLeavesZero(t *testing.T) {
	var req BlogRequest
	require.NoError(t, Bind(jsonRequest(`{"title":"t","content":"c","publishDate":null}`), &req))
	assert.Nil(t, req.PublishDate.Ptr())
}

// --- conversion ---

func TestSettingsUpdate_EscapesNestedText(t *testing.T) {
	var req SettingsUpdateRequest
	require.NoError(t, Bind(jsonRequest(`{"banners":[{"title":"<i>Welcome</i>","image":"https://cdn/a.png"}]}`), &req))

	patch := req.ToPatch()
	require.NotNil(t, patch.Banners)
	assert.Equal(t, "&lt;i&gt;Welcome&lt;/i&gt;", (*patch.Banners)[0].Title)
	assert.Nil(t, patch.Announcements)
	assert.False(t, patch.IsEmpty())
}
