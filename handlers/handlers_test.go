package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"skiply/middleware"
	"skiply/models"
	"skiply/services/queue"
	"skiply/utils"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockQueueService struct {
	mock.Mock
}

func (m *mockQueueService) BookQueue(ctx context.Context, caller models.Identity, req models.BookingRequest) (*models.Booking, error) {
	args := m.Called(ctx, caller, req)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockQueueService) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error) {
	args := m.Called(ctx, id, status)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockQueueService) GetUserBookings(ctx context.Context, caller models.Identity) ([]models.BookingDetails, error) {
	args := m.Called(ctx, caller)
	list, _ := args.Get(0).([]models.BookingDetails)
	return list, args.Error(1)
}

func (m *mockQueueService) GetBusinessBookings(ctx context.Context, ref string) ([]models.BookingDetails, error) {
	args := m.Called(ctx, ref)
	list, _ := args.Get(0).([]models.BookingDetails)
	return list, args.Error(1)
}

func (m *mockQueueService) GetQueueStatus(ctx context.Context, id string) (*models.QueueStatus, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.QueueStatus)
	return s, args.Error(1)
}

func (m *mockQueueService) GetBusinessMetrics(ctx context.Context, ref string) (*models.QueueMetrics, error) {
	args := m.Called(ctx, ref)
	s, _ := args.Get(0).(*models.QueueMetrics)
	return s, args.Error(1)
}

func (m *mockQueueService) PreviewNextToken(ctx context.Context, req models.TokenPreviewRequest) (*models.TokenPreview, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*models.TokenPreview)
	return p, args.Error(1)
}

func (m *mockQueueService) ExpireStaleBookings(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ queue.QueueService = (*mockQueueService)(nil)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, id, update)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.User)
	return list, args.Error(1)
}

func (m *mockUserService) ListOpenBusinesses(ctx context.Context) ([]models.Business, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.Business)
	return list, args.Error(1)
}

type mockImageService struct {
	mock.Mock
}

func (m *mockImageService) UploadImage(ctx context.Context, caller models.Identity, path string) (*models.Image, error) {
	args := m.Called(ctx, caller, path)
	img, _ := args.Get(0).(*models.Image)
	return img, args.Error(1)
}

var caller = models.Identity{UserID: primitive.NewObjectID(), Role: models.RoleUser}

// withIdentity stands in for the auth middleware.
func withIdentity(identity models.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityKey, identity)
		c.Next()
	}
}

func serve(r *gin.Engine, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func queueRouter(svc *mockQueueService) *gin.Engine {
	h := NewQueueHandler(svc)
	r := gin.New()
	r.POST("/book", withIdentity(caller), h.BookQueue)
	r.GET("/my-bookings", withIdentity(caller), h.GetUserBookings)
	r.PATCH("/:id/status", h.UpdateBookingStatus)
	r.GET("/business/:businessId", h.GetBusinessBookings)
	r.GET("/next-token", h.GetNextToken)
	r.GET("/status/:id", h.GetQueueStatus)
	r.GET("/metrics/:businessId", h.GetBusinessQueueMetrics)
	r.POST("/anonymous", h.BookQueue)
	return r
}

func TestQueueHandler_BookQueue(t *testing.T) {
	svc := &mockQueueService{}
	r := queueRouter(svc)

	req := models.BookingRequest{
		BusinessID:     primitive.NewObjectID().Hex(),
		BusinessName:   gofakeit.Company(),
		DepartmentName: "X",
		CustomerName:   gofakeit.Name(),
		CustomerPhone:  gofakeit.Phone(),
	}
	booking := &models.Booking{ID: primitive.NewObjectID(), TokenNumber: 1, Status: models.StatusPending}
	svc.On("BookQueue", mock.Anything, caller, req).Return(booking, nil)

	body, _ := json.Marshal(req)
	w := serve(r, http.MethodPost, "/book", body, "application/json")
	require.Equal(t, http.StatusCreated, w.Code)

	var got models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got.TokenNumber)
	svc.AssertExpectations(t)
}

func TestQueueHandler_BookQueueErrors(t *testing.T) {
	svc := &mockQueueService{}
	r := queueRouter(svc)

	w := serve(r, http.MethodPost, "/book", []byte("{"), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("BookQueue", mock.Anything, caller, mock.Anything).
		Return(nil, utils.NewValidationError("Business name is required")).Once()
	w = serve(r, http.MethodPost, "/book", []byte(`{"businessId":"x"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Business name is required", errorBody(t, w).Message)

	svc.On("BookQueue", mock.Anything, caller, mock.Anything).
		Return(nil, utils.NewInternalError("Failed to create booking", assert.AnError)).Once()
	w = serve(r, http.MethodPost, "/book", []byte(`{"businessId":"x"}`), "application/json")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, assert.AnError.Error(), errorBody(t, w).Error)

	w = serve(r, http.MethodPost, "/anonymous", []byte(`{}`), "application/json")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestQueueHandler_UpdateBookingStatus(t *testing.T) {
	svc := &mockQueueService{}
	r := queueRouter(svc)
	id := primitive.NewObjectID().Hex()

	svc.On("UpdateBookingStatus", mock.Anything, id, models.StatusCompleted).
		Return(&models.Booking{Status: models.StatusCompleted}, nil)
	svc.On("UpdateBookingStatus", mock.Anything, id, models.StatusPending).
		Return(nil, utils.NewConflictError("Invalid status transition", &queue.TransitionError{From: models.StatusCompleted, To: models.StatusPending}))

	w := serve(r, http.MethodPatch, "/"+id+"/status", []byte(`{"status":"completed"}`), "application/json")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodPatch, "/"+id+"/status", []byte(`{"status":"pending"}`), "application/json")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "cannot move booking from completed to pending", errorBody(t, w).Error)
}

func TestQueueHandler_Reads(t *testing.T) {
	svc := &mockQueueService{}
	r := queueRouter(svc)
	bizID := primitive.NewObjectID().Hex()

	svc.On("GetUserBookings", mock.Anything, caller).Return([]models.BookingDetails{}, nil)
	svc.On("GetBusinessBookings", mock.Anything, bizID).Return([]models.BookingDetails{{}, {}}, nil)
	svc.On("GetQueueStatus", mock.Anything, "b1").Return(&models.QueueStatus{PeopleAhead: 1, EstimatedWaitMinutes: 5, TokenNumber: 2, Status: models.StatusPending}, nil)
	svc.On("GetQueueStatus", mock.Anything, "gone").Return(nil, utils.NewNotFoundError("Booking not found"))
	svc.On("GetBusinessMetrics", mock.Anything, bizID).Return(&models.QueueMetrics{PerDepartment: map[string]int{}}, nil)
	svc.On("PreviewNextToken", mock.Anything, models.TokenPreviewRequest{BusinessName: "City Clinic", DepartmentName: "X", Date: "2024-05-01"}).
		Return(&models.TokenPreview{TokenNumber: 4}, nil)

	w := serve(r, http.MethodGet, "/my-bookings", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = serve(r, http.MethodGet, "/business/"+bizID, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/status/b1", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"peopleAhead":1,"estimatedWaitTime":5,"tokenNumber":2,"status":"pending"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/status/gone", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Booking not found", errorBody(t, w).Message)

	w = serve(r, http.MethodGet, "/metrics/"+bizID, nil, "")
	assert.JSONEq(t, `{"totalInQueue":0,"avgWaitMinutes":0,"perDepartment":{}}`, w.Body.String())

	w = serve(r, http.MethodGet, "/next-token?businessName=City+Clinic&departmentName=X&date=2024-05-01", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tokenNumber":4}`, w.Body.String())
}

func userRouter(svc *mockUserService, images *mockImageService) *gin.Engine {
	h := NewUserHandler(svc, images)
	r := gin.New()
	r.GET("/profile", withIdentity(caller), h.GetProfile)
	r.PUT("/profile", withIdentity(caller), h.UpdateProfile)
	r.GET("/users", h.GetAllUsers)
	r.GET("/businesses/open", h.GetOpenBusinesses)
	return r
}

func TestUserHandler_JSONProfileUpdate(t *testing.T) {
	svc, images := &mockUserService{}, &mockImageService{}
	r := userRouter(svc, images)

	name := "Achieng"
	svc.On("UpdateProfile", mock.Anything, caller.UserID, models.ProfileUpdate{Name: &name}).
		Return(&models.User{ID: caller.UserID, Name: name, Password: "hash"}, nil)

	w := serve(r, http.MethodPut, "/profile", []byte(`{"name":"Achieng"}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "hash")
	assert.NotContains(t, w.Body.String(), "password")
	images.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserHandler_MultipartProfileUpdate(t *testing.T) {
	svc, images := &mockUserService{}, &mockImageService{}
	r := userRouter(svc, images)

	url := "https://res.cloudinary.com/demo/image/upload/skiply/me.png"
	images.On("UploadImage", mock.Anything, caller, mock.MatchedBy(func(p string) bool {
		_, err := os.Stat(p)
		return err == nil && strings.HasSuffix(p, ".png")
	})).Return(&models.Image{URL: url, PublicID: "skiply/me"}, nil)
	svc.On("UpdateProfile", mock.Anything, caller.UserID, mock.MatchedBy(func(u models.ProfileUpdate) bool {
		return u.ProfileImage != nil && *u.ProfileImage == url && u.Location != nil && *u.Location == "Kisumu" && u.Name == nil
	})).Return(&models.User{ID: caller.UserID, ProfileImage: url}, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("location", "Kisumu"))
	part, err := mw.CreateFormFile("image", "me.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG fake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := serve(r, http.MethodPut, "/profile", buf.Bytes(), mw.FormDataContentType())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	svc.AssertExpectations(t)
	images.AssertExpectations(t)
}

func TestUserHandler_Lists(t *testing.T) {
	svc, images := &mockUserService{}, &mockImageService{}
	r := userRouter(svc, images)
	svc.On("GetAllUsers", mock.Anything).Return(nil, utils.NewInternalError("Failed to fetch users", assert.AnError))
	svc.On("ListOpenBusinesses", mock.Anything).Return([]models.Business{{BusinessName: "City Clinic", IsOpen: true}}, nil)
	svc.On("GetProfile", mock.Anything, caller.UserID).Return(&models.User{ID: caller.UserID, Name: "Me"}, nil)

	w := serve(r, http.MethodGet, "/users", nil, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch users", errorBody(t, w).Message)

	w = serve(r, http.MethodGet, "/businesses/open", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "City Clinic")

	w = serve(r, http.MethodGet, "/profile", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStorageHandler_UploadImage(t *testing.T) {
	images := &mockImageService{}
	h := NewStorageHandler(images)
	r := gin.New()
	r.POST("/upload", withIdentity(caller), h.UploadImage)

	w := serve(r, http.MethodPost, "/upload", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", errorBody(t, w).Message)

	images.On("UploadImage", mock.Anything, caller, mock.Anything).
		Return(&models.Image{ID: primitive.NewObjectID(), URL: "https://res.cloudinary.com/demo/x.jpg", PublicID: "skiply/x"}, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "x.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpeg"))
	require.NoError(t, mw.Close())

	w = serve(r, http.MethodPost, "/upload", buf.Bytes(), mw.FormDataContentType())
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Image
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "skiply/x", got.PublicID)
}
