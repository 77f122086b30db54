package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dom "Socialmedia/internal/domain"

	"github.com/gin-gonic/gin"
)

// ---- mock implementations ----

type mockAccountService struct {
	registerFn func(dom.Account) (dom.Account, error)
	loginFn    func(string, string) (dom.Account, bool, error)
	existsFn   func(int64) bool
}

func (m *mockAccountService) Register(_ context.Context, a dom.Account) (dom.Account, error) {
	if m.registerFn != nil {
		return m.registerFn(a)
	}
	return dom.Account{}, fmt.Errorf("not configured")
}

func (m *mockAccountService) Login(_ context.Context, u, p string) (dom.Account, bool, error) {
	if m.loginFn != nil {
		return m.loginFn(u, p)
	}
	return dom.Account{}, false, fmt.Errorf("not configured")
}

func (m *mockAccountService) Exists(_ context.Context, id int64) bool {
	if m.existsFn != nil {
		return m.existsFn(id)
	}
	return false
}

type mockMessageService struct {
	postFn     func(dom.Message) (dom.Message, error)
	listFn     func() ([]dom.Message, error)
	getFn      func(int64) (dom.Message, bool, error)
	deleteFn   func(int64) (bool, error)
	updateFn   func(int64, string) (dom.Message, error)
	byAuthorFn func(int64) ([]dom.Message, error)
}

func (m *mockMessageService) PostMessage(_ context.Context, msg dom.Message) (dom.Message, error) {
	if m.postFn != nil {
		return m.postFn(msg)
	}
	return dom.Message{}, fmt.Errorf("not configured")
}

func (m *mockMessageService) GetAllMessages(context.Context) ([]dom.Message, error) {
	if m.listFn != nil {
		return m.listFn()
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockMessageService) GetMessageByID(_ context.Context, id int64) (dom.Message, bool, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return dom.Message{}, false, fmt.Errorf("not configured")
}

func (m *mockMessageService) DeleteMessage(_ context.Context, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return false, fmt.Errorf("not configured")
}

func (m *mockMessageService) UpdateMessageText(_ context.Context, id int64, text string) (dom.Message, error) {
	if m.updateFn != nil {
		return m.updateFn(id, text)
	}
	return dom.Message{}, fmt.Errorf("not configured")
}

func (m *mockMessageService) GetMessagesByUserID(_ context.Context, id int64) ([]dom.Message, error) {
	if m.byAuthorFn != nil {
		return m.byAuthorFn(id)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

var hiMessage = dom.Message{ID: 1, AuthorID: 1, Text: "hi", PostedAt: 1669947792}

func newTestRouter(accounts AccountService, messages MessageService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ah := NewAccountHandler(accounts)
	mh := NewMessageHandler(messages, accounts)
	r.POST("/register", ah.Register)
	r.POST("/login", ah.Login)
	r.POST("/messages", mh.Create)
	r.GET("/messages", mh.List)
	r.GET("/messages/:message_id", mh.GetByID)
	r.DELETE("/messages/:message_id", mh.Delete)
	r.PATCH("/messages/:message_id", mh.Update)
	r.GET("/accounts/:account_id/messages", mh.ListByAccount)
	return r
}

func doRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req, _ = http.NewRequest(method, url, nil)
	case string:
		req, _ = http.NewRequest(method, url, strings.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		raw, _ := json.Marshal(b)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(raw)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON error body, got %q", w.Body.String())
	}
	return body["error"]
}

// ---- tests ----

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		registerFn     func(dom.Account) (dom.Account, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success - account returned with id",
			body: map[string]string{"username": "bob", "password": "pass1"},
			registerFn: func(a dom.Account) (dom.Account, error) {
				a.ID = 1
				return a, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"account_id":1,"username":"bob","password":"pass1"}`,
		},
		{
			name:           "bad request - username taken",
			body:           map[string]string{"username": "bob", "password": "pass1"},
			registerFn:     func(dom.Account) (dom.Account, error) { return dom.Account{}, dom.ViolationUsernameTaken.Err() },
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"username is already taken"}`,
		},
		{
			name:           "bad request - short password",
			body:           map[string]string{"username": "bob", "password": "abc"},
			registerFn:     func(dom.Account) (dom.Account, error) { return dom.Account{}, dom.ViolationPasswordTooShort.Err() },
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"password must be at least 4 characters long"}`,
		},
		{
			name:           "bad request - malformed json",
			body:           `{"username":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request body"}`,
		},
		{
			name:           "internal error - store down",
			body:           map[string]string{"username": "bob", "password": "pass1"},
			registerFn:     func(dom.Account) (dom.Account, error) { return dom.Account{}, fmt.Errorf("create account: connection refused") },
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockAccountService{registerFn: tt.registerFn}, &mockMessageService{})
			w := doRequest(router, http.MethodPost, "/register", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if w.Body.String() != tt.expectedBody {
				t.Errorf("[%s] expected body %s got %s", tt.name, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestLogin(t *testing.T) {
	bob := dom.Account{ID: 1, Username: "bob", Password: "pass1"}
	tests := []struct {
		name           string
		body           interface{}
		loginFn        func(string, string) (dom.Account, bool, error)
		expectedStatus int
	}{
		{
			name:           "success - matching credentials",
			body:           map[string]string{"username": "bob", "password": "pass1"},
			loginFn:        func(string, string) (dom.Account, bool, error) { return bob, true, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unauthorised - no match",
			body:           map[string]string{"username": "bob", "password": "nope"},
			loginFn:        func(string, string) (dom.Account, bool, error) { return dom.Account{}, false, nil },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "bad request - malformed json",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "internal error - store down",
			body:           map[string]string{"username": "bob", "password": "pass1"},
			loginFn:        func(string, string) (dom.Account, bool, error) { return dom.Account{}, false, fmt.Errorf("timeout") },
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockAccountService{loginFn: tt.loginFn}, &mockMessageService{})
			w := doRequest(router, http.MethodPost, "/login", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus != http.StatusOK && errorBody(t, w) == "" {
				t.Errorf("[%s] expected error message", tt.name)
			}
		})
	}
}

func TestCreateMessage(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		existsFn       func(int64) bool
		postFn         func(dom.Message) (dom.Message, error)
		expectedStatus int
	}{
		{
			name:     "success",
			body:     map[string]interface{}{"posted_by": 1, "message_text": "hi", "time_posted_epoch": 1669947792},
			existsFn: func(int64) bool { return true },
			postFn: func(m dom.Message) (dom.Message, error) {
				if m.AuthorID != 1 || m.Text != "hi" || m.PostedAt != 1669947792 {
					return dom.Message{}, fmt.Errorf("unexpected candidate %+v", m)
				}
				m.ID = 1
				return m, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad request - unknown author",
			body:           map[string]interface{}{"posted_by": 99, "message_text": "hi"},
			existsFn:       func(int64) bool { return false },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - text too long",
			body:           map[string]interface{}{"posted_by": 1, "message_text": strings.Repeat("a", 256)},
			existsFn:       func(int64) bool { return true },
			postFn:         func(dom.Message) (dom.Message, error) { return dom.Message{}, dom.ViolationTextTooLong.Err() },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - posted_by not a number",
			body:           `{"posted_by":"one","message_text":"hi"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockAccountService{existsFn: tt.existsFn}, &mockMessageService{postFn: tt.postFn})
			w := doRequest(router, http.MethodPost, "/messages", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestListMessages(t *testing.T) {
	router := newTestRouter(&mockAccountService{}, &mockMessageService{
		listFn: func() ([]dom.Message, error) { return []dom.Message{}, nil },
	})
	w := doRequest(router, http.MethodGet, "/messages", nil)
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Errorf("expected 200 [] got %d %s", w.Code, w.Body.String())
	}

	router = newTestRouter(&mockAccountService{}, &mockMessageService{
		listFn: func() ([]dom.Message, error) { return []dom.Message{hiMessage}, nil },
	})
	w = doRequest(router, http.MethodGet, "/messages", nil)
	want := `[{"message_id":1,"posted_by":1,"message_text":"hi","time_posted_epoch":1669947792}]`
	if w.Code != http.StatusOK || w.Body.String() != want {
		t.Errorf("expected 200 %s got %d %s", want, w.Code, w.Body.String())
	}
}

func TestGetMessageByID(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		getFn          func(int64) (dom.Message, bool, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "found",
			url:            "/messages/1",
			getFn:          func(int64) (dom.Message, bool, error) { return hiMessage, true, nil },
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message_id":1,"posted_by":1,"message_text":"hi","time_posted_epoch":1669947792}`,
		},
		{
			name:           "absent - empty body",
			url:            "/messages/100",
			getFn:          func(int64) (dom.Message, bool, error) { return dom.Message{}, false, nil },
			expectedStatus: http.StatusOK,
			expectedBody:   "",
		},
		{
			name:           "bad id",
			url:            "/messages/abc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid message_id"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockAccountService{}, &mockMessageService{getFn: tt.getFn})
			w := doRequest(router, http.MethodGet, tt.url, nil)
			if w.Code != tt.expectedStatus || w.Body.String() != tt.expectedBody {
				t.Errorf("[%s] expected %d %q got %d %q", tt.name, tt.expectedStatus, tt.expectedBody, w.Code, w.Body.String())
			}
		})
	}
}

func TestDeleteMessage(t *testing.T) {
	deleted := 0
	svc := &mockMessageService{
		getFn: func(id int64) (dom.Message, bool, error) {
			if id == hiMessage.ID && deleted == 0 {
				return hiMessage, true, nil
			}
			return dom.Message{}, false, nil
		},
		deleteFn: func(int64) (bool, error) {
			deleted++
			return true, nil
		},
	}
	router := newTestRouter(&mockAccountService{}, svc)

	w := doRequest(router, http.MethodDelete, "/messages/1", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"message_text":"hi"`) {
		t.Errorf("expected deleted message, got %d %s", w.Code, w.Body.String())
	}
	w = doRequest(router, http.MethodDelete, "/messages/1", nil)
	if w.Code != http.StatusOK || w.Body.Len() != 0 {
		t.Errorf("expected 200 empty body on second delete, got %d %s", w.Code, w.Body.String())
	}
	if deleted != 1 {
		t.Errorf("expected one delete call, got %d", deleted)
	}
}

func TestUpdateMessage(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		body           interface{}
		updateFn       func(int64, string) (dom.Message, error)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "success",
			url:  "/messages/1",
			body: map[string]string{"message_text": "hello"},
			updateFn: func(id int64, text string) (dom.Message, error) {
				m := hiMessage
				m.Text = text
				return m, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing message",
			url:            "/messages/5",
			body:           map[string]string{"message_text": "hello"},
			updateFn:       func(int64, string) (dom.Message, error) { return dom.Message{}, dom.ErrNotFound },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "message not found",
		},
		{
			name:           "blank text",
			url:            "/messages/1",
			body:           map[string]string{},
			updateFn:       func(int64, string) (dom.Message, error) { return dom.Message{}, dom.ViolationTextBlank.Err() },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "message text cannot be blank",
		},
		{
			name:           "bad id",
			url:            "/messages/-3",
			body:           map[string]string{"message_text": "hello"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid message_id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockAccountService{}, &mockMessageService{updateFn: tt.updateFn})
			w := doRequest(router, http.MethodPatch, tt.url, tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedError != "" && errorBody(t, w) != tt.expectedError {
				t.Errorf("[%s] expected error %q got %s", tt.name, tt.expectedError, w.Body.String())
			}
		})
	}
}

func TestListByAccount(t *testing.T) {
	var gotID int64
	router := newTestRouter(&mockAccountService{}, &mockMessageService{
		byAuthorFn: func(id int64) ([]dom.Message, error) {
			gotID = id
			return []dom.Message{}, nil
		},
	})
	w := doRequest(router, http.MethodGet, "/accounts/7/messages", nil)
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Errorf("expected 200 [] got %d %s", w.Code, w.Body.String())
	}
	if gotID != 7 {
		t.Errorf("expected author 7 got %d", gotID)
	}

	router = newTestRouter(&mockAccountService{}, &mockMessageService{
		byAuthorFn: func(int64) ([]dom.Message, error) { return nil, fmt.Errorf("list: broken pipe") },
	})
	w = doRequest(router, http.MethodGet, "/accounts/7/messages", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 got %d", w.Code)
	}
}
