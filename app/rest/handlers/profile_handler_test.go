package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"nav-hub/app/domain"
	mock_port "nav-hub/app/mocks"
)

const testUserID = "a1b2c3d4-e5f6-4789-a012-3456789abcde"

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestProfileHandler_GetProfile(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		setupMock      func(*mock_port.MockRouterUsecasePort)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name:   "returns the profile",
			userID: testUserID,
			setupMock: func(m *mock_port.MockRouterUsecasePort) {
				m.EXPECT().GetProfile(gomock.Any(), testUserID).Return(&domain.UserProfile{
					UserID:      testUserID,
					DisplayName: "Hana",
					Onboarded:   true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var profile domain.UserProfile
				require.NoError(t, json.Unmarshal(body, &profile))
				assert.Equal(t, "Hana", profile.DisplayName)
				assert.True(t, profile.Onboarded)
			},
		},
		{
			name:           "malformed user id is rejected",
			userID:         "not-a-uuid",
			setupMock:      func(m *mock_port.MockRouterUsecasePort) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "missing profile returns 404",
			userID: testUserID,
			setupMock: func(m *mock_port.MockRouterUsecasePort) {
				m.EXPECT().GetProfile(gomock.Any(), testUserID).Return(nil, domain.ErrProfileNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "store failure returns 500",
			userID: testUserID,
			setupMock: func(m *mock_port.MockRouterUsecasePort) {
				m.EXPECT().GetProfile(gomock.Any(), testUserID).Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRouter := mock_port.NewMockRouterUsecasePort(ctrl)
			tt.setupMock(mockRouter)

			handler := NewProfileHandler(mockRouter, testLogger())

			e := newTestEcho()
			req := httptest.NewRequest(http.MethodGet, "/v1/profiles/"+tt.userID, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetPath("/v1/profiles/:user_id")
			c.SetParamNames("user_id")
			c.SetParamValues(tt.userID)

			require.NoError(t, handler.GetProfile(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.validateBody != nil {
				tt.validateBody(t, rec.Body.Bytes())
			}
		})
	}
}

func TestProfileHandler_UpdateProfile(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		body           string
		setupMock      func(*mock_port.MockRouterUsecasePort)
		expectedStatus int
	}{
		{
			name:   "applies the patch",
			userID: testUserID,
			body:   `{"display_name":"Hana","onboarded":true}`,
			setupMock: func(m *mock_port.MockRouterUsecasePort) {
				m.EXPECT().UpdateProfile(gomock.Any(), testUserID, domain.ProfilePatch{
					DisplayName: strPtr("Hana"),
					Onboarded:   boolPtr(true),
				}).Return(&domain.UserProfile{
					UserID:      testUserID,
					DisplayName: "Hana",
					Onboarded:   true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed user id is rejected",
			userID:         "not-a-uuid",
			body:           `{"onboarded":true}`,
			setupMock:      func(m *mock_port.MockRouterUsecasePort) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid avatar url is rejected",
			userID:         testUserID,
			body:           `{"avatar_url":"not a url"}`,
			setupMock:      func(m *mock_port.MockRouterUsecasePort) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "empty patch is rejected",
			userID: testUserID,
			body:   `{}`,
			setupMock: func(m *mock_port.MockRouterUsecasePort) {
				m.EXPECT().UpdateProfile(gomock.Any(), testUserID, domain.ProfilePatch{}).
					Return(nil, domain.ErrEmptyPatch)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "store failure returns 500",
			userID: testUserID,
			body:   `{"onboarded":true}`,
			setupMock: func(m *mock_port.MockRouterUsecasePort) {
				m.EXPECT().UpdateProfile(gomock.Any(), testUserID, gomock.Any()).
					Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRouter := mock_port.NewMockRouterUsecasePort(ctrl)
			tt.setupMock(mockRouter)

			handler := NewProfileHandler(mockRouter, testLogger())

			e := newTestEcho()
			req := jsonRequest(http.MethodPut, "/v1/profiles/"+tt.userID, tt.body)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetPath("/v1/profiles/:user_id")
			c.SetParamNames("user_id")
			c.SetParamValues(tt.userID)

			require.NoError(t, handler.UpdateProfile(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestUpdateProfileRequest_Validation(t *testing.T) {
	e := newTestEcho()

	valid := UpdateProfileRequest{
		DisplayName: strPtr("Hana"),
		AvatarURL:   strPtr("https://cdn.nav.local/avatars/1.png"),
		Onboarded:   boolPtr(true),
	}
	assert.NoError(t, e.Validator.Validate(&valid))

	overlong := UpdateProfileRequest{DisplayName: strPtr(string(make([]byte, 101)))}
	assert.Error(t, e.Validator.Validate(&overlong))
}
