package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pulsewatch/pulsewatch/internal/domain/model"
)

func TestCreateEmailChannelExposesVerificationToken(t *testing.T) {
	router, repos := newTestRouter(t)

	repos.channels.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ch *model.NotificationChannel) error {
			assert.Equal(t, testAccountID, ch.AccountID)
			assert.False(t, ch.IsVerified)
			return nil
		})

	rec := doJSON(t, router, http.MethodPost, "/api/channels",
		`{"type":"email","name":"oncall","configuration_details":{"email":"oncall@example.com"}}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		IsVerified        bool   `json:"is_verified"`
		VerificationToken string `json:"verification_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.IsVerified)
	assert.NotEmpty(t, resp.VerificationToken)
}

func TestCreateSlackChannelOmitsVerificationToken(t *testing.T) {
	router, repos := newTestRouter(t)

	repos.channels.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	rec := doJSON(t, router, http.MethodPost, "/api/channels",
		`{"type":"slack","name":"ops","configuration_details":{"webhook_url":"https://hooks.slack.com/services/T0/B0/xyz"}}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "verification_token")
}

func TestVerifyChannelBadToken(t *testing.T) {
	router, repos := newTestRouter(t)

	repos.channels.EXPECT().GetByID(gomock.Any(), testAccountID, "chan-1").
		Return(&model.NotificationChannel{ID: "chan-1"}, nil)
	repos.channels.EXPECT().MarkVerified(gomock.Any(), testAccountID, "chan-1", "wrong").
		Return(false, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/channels/chan-1/verify", `{"token":"wrong"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "verification_failed")
}

func TestVerifyChannel(t *testing.T) {
	router, repos := newTestRouter(t)

	repos.channels.EXPECT().GetByID(gomock.Any(), testAccountID, "chan-1").
		Return(&model.NotificationChannel{ID: "chan-1"}, nil)
	repos.channels.EXPECT().MarkVerified(gomock.Any(), testAccountID, "chan-1", "good").
		Return(true, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/channels/chan-1/verify", `{"token":"good"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteChannelNotFound(t *testing.T) {
	router, repos := newTestRouter(t)

	repos.channels.EXPECT().Delete(gomock.Any(), testAccountID, "ghost").Return(false, nil)

	rec := doJSON(t, router, http.MethodDelete, "/api/channels/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}
