package guard

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockHandler struct {
	mock.Mock
}

func (m *mockHandler) HandleAuthenticationError(w http.ResponseWriter, r *http.Request, resource Resource) error {
	args := m.Called(w, r, resource)
	return args.Error(0)
}

func (m *mockHandler) HandleAuthorization(w http.ResponseWriter, r *http.Request, actor any, resource Resource) error {
	args := m.Called(w, r, actor, resource)
	return args.Error(0)
}

func TestNew(t *testing.T) {
	cases := map[string]struct {
		handler     Handler
		cfg         Config
		expectedErr error
	}{
		"valid configuration": {
			handler: new(mockHandler),
			cfg:     Config{Resource: "admin_routes"},
		},
		"missing resource tag": {
			handler:     new(mockHandler),
			cfg:         Config{},
			expectedErr: ErrMissingResource,
		},
		"nil handler": {
			handler:     nil,
			cfg:         Config{Resource: "admin_routes"},
			expectedErr: ErrNilHandler,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := New(tc.handler, tc.cfg)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, s)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.cfg.Resource, s.Resource())
		})
	}
}

func TestMustNew(t *testing.T) {
	assert.NotPanics(t, func() {
		MustNew(new(mockHandler), Config{Resource: "admin_routes"})
	})

	assert.PanicsWithError(t, ErrMissingResource.Error(), func() {
		MustNew(new(mockHandler), Config{})
	})
}

func TestStage_Dispatch(t *testing.T) {
	verdict := errors.New("halted")

	cases := map[string]struct {
		actor            any
		verdict          error
		expectAuthnError bool
	}{
		"no actor dispatches to the authentication error callback": {
			actor:            nil,
			verdict:          verdict,
			expectAuthnError: true,
		},
		"no actor with nil verdict": {
			actor:            nil,
			verdict:          nil,
			expectAuthnError: true,
		},
		"actor dispatches to the authorization callback": {
			actor:   map[string]string{"type": "admin"},
			verdict: verdict,
		},
		"actor with nil verdict": {
			actor:   map[string]string{"type": "admin"},
			verdict: nil,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			handler := new(mockHandler)
			handler.On("HandleAuthenticationError", mock.Anything, mock.Anything, Resource("admin_routes")).Return(tc.verdict)
			handler.On("HandleAuthorization", mock.Anything, mock.Anything, tc.actor, Resource("admin_routes")).Return(tc.verdict)

			s, err := New(handler, Config{Resource: "admin_routes"})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.actor != nil {
				req = WithActor(req, tc.actor)
			}

			got := s.Dispatch(httptest.NewRecorder(), req)

			assert.Equal(t, tc.verdict, got)
			if tc.expectAuthnError {
				handler.AssertCalled(t, "HandleAuthenticationError", mock.Anything, mock.Anything, Resource("admin_routes"))
				handler.AssertNotCalled(t, "HandleAuthorization", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				handler.AssertCalled(t, "HandleAuthorization", mock.Anything, mock.Anything, tc.actor, Resource("admin_routes"))
				handler.AssertNotCalled(t, "HandleAuthenticationError", mock.Anything, mock.Anything, mock.Anything)
			}
			handler.AssertNumberOfCalls(t, "HandleAuthenticationError", boolToCalls(tc.expectAuthnError))
			handler.AssertNumberOfCalls(t, "HandleAuthorization", boolToCalls(!tc.expectAuthnError))
		})
	}
}

func TestStage_DispatchIsIdempotent(t *testing.T) {
	handler := new(mockHandler)
	handler.On("HandleAuthorization", mock.Anything, mock.Anything, "amy", Resource("admin_routes")).Return(ErrForbidden)

	s := MustNew(handler, Config{Resource: "admin_routes"})
	req := WithActor(httptest.NewRequest(http.MethodGet, "/admin", nil), "amy")

	first := s.Dispatch(httptest.NewRecorder(), req)
	second := s.Dispatch(httptest.NewRecorder(), req)

	assert.Equal(t, first, second)
	handler.AssertNumberOfCalls(t, "HandleAuthorization", 2)
}

func TestStage_Handle(t *testing.T) {
	cases := map[string]struct {
		verdict      error
		expectedNext bool
	}{
		"nil verdict continues the chain": {
			verdict:      nil,
			expectedNext: true,
		},
		"halt verdict stops the chain": {
			verdict:      ErrForbidden,
			expectedNext: false,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			handler := new(mockHandler)
			handler.On("HandleAuthorization", mock.Anything, mock.Anything, "amy", Resource("admin_routes")).Return(tc.verdict)

			nextCalled := false
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				nextCalled = true
			})

			s := MustNew(handler, Config{Resource: "admin_routes"})
			req := WithActor(httptest.NewRequest(http.MethodGet, "/admin", nil), "amy")

			s.Handle(next).ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tc.expectedNext, nextCalled)
		})
	}
}

func TestHandlerFuncs(t *testing.T) {
	t.Run("configured callbacks are used", func(t *testing.T) {
		var gotResource Resource
		var gotActor any

		h := HandlerFuncs{
			OnAuthenticationError: func(_ http.ResponseWriter, _ *http.Request, resource Resource) error {
				gotResource = resource
				return ErrUnauthenticated
			},
			OnAuthorization: func(_ http.ResponseWriter, _ *http.Request, actor any, _ Resource) error {
				gotActor = actor
				return nil
			},
		}

		err := h.HandleAuthenticationError(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "api_routes")
		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.Equal(t, Resource("api_routes"), gotResource)

		err = h.HandleAuthorization(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "amy", "api_routes")
		assert.NoError(t, err)
		assert.Equal(t, "amy", gotActor)
	})

	t.Run("nil callbacks fail closed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := HandlerFuncs{}.HandleAuthorization(rec, httptest.NewRequest(http.MethodGet, "/", nil), "amy", "api_routes")

		assert.ErrorIs(t, err, ErrForbidden)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestDefaultHandler(t *testing.T) {
	cases := map[string]struct {
		invoke          func(rec *httptest.ResponseRecorder) error
		expectedStatus  int
		expectedVerdict error
		expectedMessage string
	}{
		"authentication error answers 401": {
			invoke: func(rec *httptest.ResponseRecorder) error {
				return DefaultHandler{}.HandleAuthenticationError(rec, httptest.NewRequest(http.MethodGet, "/", nil), "admin_routes")
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedVerdict: ErrUnauthenticated,
			expectedMessage: "unauthenticated",
		},
		"authorization answers 403": {
			invoke: func(rec *httptest.ResponseRecorder) error {
				return DefaultHandler{}.HandleAuthorization(rec, httptest.NewRequest(http.MethodGet, "/", nil), "amy", "admin_routes")
			},
			expectedStatus:  http.StatusForbidden,
			expectedVerdict: ErrForbidden,
			expectedMessage: "forbidden",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			err := tc.invoke(rec)

			assert.ErrorIs(t, err, tc.expectedVerdict)
			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, map[string]string{"error": tc.expectedMessage}, body)
		})
	}
}

func boolToCalls(b bool) int {
	if b {
		return 1
	}

	return 0
}
