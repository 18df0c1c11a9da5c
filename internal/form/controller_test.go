package form_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"productform/internal/form"
	"productform/internal/models"
	"productform/internal/validation"
)

// MockCreator is a mock implementation of form.ProductCreator
type MockCreator struct {
	mock.Mock
}

func (m *MockCreator) Create(ctx context.Context, p *models.Product) models.Outcome {
	args := m.Called(ctx, p)
	return args.Get(0).(models.Outcome)
}

// MockPublisher is a mock implementation of form.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishProductCreated(data map[string]interface{}) error {
	args := m.Called(data)
	return args.Error(0)
}

func newController(creator form.ProductCreator, publisher form.EventPublisher) *form.Controller {
	return form.New("form-1", models.VariantManual, validation.NewManual(), creator, publisher)
}

func fillMinimal(t *testing.T, c *form.Controller) {
	require.NoError(t, c.SetField(models.FieldName, "A"))
	require.NoError(t, c.SetField(models.FieldImages, "x"))
}

func TestController_NewHoldsInitialDraft(t *testing.T) {
	c := newController(new(MockCreator), nil)

	assert.Equal(t, models.NewDraft(), c.Draft())
	assert.Empty(t, c.Errors())
	assert.False(t, c.IsSubmitting())
	assert.Nil(t, c.Notice())
}

func TestController_SetFieldCoercion(t *testing.T) {
	c := newController(new(MockCreator), nil)

	require.NoError(t, c.SetField(models.FieldPrice, "12.5"))
	require.NoError(t, c.SetField(models.FieldQuantity, ""))
	require.NoError(t, c.SetField(models.FieldCompareAtPrice, ""))
	require.NoError(t, c.SetField(models.FieldBarcode, ""))
	require.NoError(t, c.SetField(models.FieldSKU, "SKU-1"))
	require.NoError(t, c.SetField(models.FieldName, ""))
	require.NoError(t, c.SetField(models.FieldFeatured, "on"))
	require.NoError(t, c.SetField(models.FieldIsDefault, "false"))

	d := c.Draft()
	assert.Equal(t, json.Number("12.5"), d.Price)
	assert.Equal(t, json.Number("0"), d.Quantity)
	assert.Nil(t, d.CompareAtPrice)
	assert.Nil(t, d.Barcode)
	require.NotNil(t, d.SKU)
	assert.Equal(t, "SKU-1", *d.SKU)
	assert.Equal(t, "", d.Name)
	assert.True(t, d.Featured)
	require.NotNil(t, d.IsDefault)
	assert.False(t, *d.IsDefault)

	require.NoError(t, c.SetField(models.FieldIsDefault, ""))
	assert.Nil(t, c.Draft().IsDefault)
}

func TestController_SetFieldEmptyCompareAtPriceIsNoValue(t *testing.T) {
	c := newController(new(MockCreator), nil)

	require.NoError(t, c.SetField(models.FieldCompareAtPrice, "9"))
	require.NoError(t, c.SetField(models.FieldCompareAtPrice, ""))

	assert.Nil(t, c.Draft().CompareAtPrice)
}

func TestController_SetFieldRejectsUnknownAndInvalid(t *testing.T) {
	c := newController(new(MockCreator), nil)

	err := c.SetField("colour", "red")
	assert.True(t, errors.Is(err, form.ErrUnknownField))

	err = c.SetField(models.FieldPublished, "maybe")
	assert.True(t, errors.Is(err, form.ErrInvalidValue))
	assert.Equal(t, models.NewDraft(), c.Draft())
}

func TestController_SubmitValidationFailed(t *testing.T) {
	creator := new(MockCreator)
	c := newController(creator, nil)

	result := c.Submit(context.Background())

	assert.Equal(t, form.StatusValidationFailed, result.Status)
	assert.Contains(t, result.Errors, models.FieldName)
	assert.Contains(t, result.Errors, models.FieldImages)
	assert.Equal(t, result.Errors, c.Errors())
	creator.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestController_SetFieldClearsOnlyThatError(t *testing.T) {
	c := newController(new(MockCreator), nil)
	c.Submit(context.Background())

	require.NoError(t, c.SetField(models.FieldName, ""))

	errs := c.Errors()
	assert.NotContains(t, errs, models.FieldName)
	assert.Contains(t, errs, models.FieldImages)
}

func TestController_SubmitSuccessResetsDraft(t *testing.T) {
	creator := new(MockCreator)
	publisher := new(MockPublisher)
	c := newController(creator, publisher)
	fillMinimal(t, c)
	require.NoError(t, c.SetField(models.FieldTags, "new"))
	sent := c.Draft()

	creator.On("Create", mock.Anything, &sent).Return(models.Succeeded(201, nil)).Once()
	publisher.On("PublishProductCreated", mock.MatchedBy(func(data map[string]interface{}) bool {
		return data["formID"] == "form-1" && data["product"] == sent
	})).Return(nil).Once()

	result := c.Submit(context.Background())

	assert.Equal(t, form.StatusSuccess, result.Status)
	assert.Equal(t, models.NewDraft(), c.Draft())
	assert.Empty(t, c.Errors())
	require.NotNil(t, c.Notice())
	assert.True(t, c.Notice().Success)
	creator.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestController_SubmitFailureKeepsDraft(t *testing.T) {
	creator := new(MockCreator)
	c := newController(creator, nil)
	fillMinimal(t, c)
	require.NoError(t, c.SetField(models.FieldPrice, "3.25"))
	before := c.Draft()

	creator.On("Create", mock.Anything, mock.Anything).
		Return(models.Failed(500, "HTTP error, status 500")).Once()

	result := c.Submit(context.Background())

	assert.Equal(t, form.StatusFailure, result.Status)
	assert.Equal(t, "HTTP error, status 500", result.Message)
	assert.Equal(t, before, c.Draft())
	assert.Empty(t, c.Errors(), "submission failures are not field errors")
	require.NotNil(t, c.Notice())
	assert.False(t, c.Notice().Success)
	creator.AssertExpectations(t)
}

func TestController_PublishFailureDoesNotChangeOutcome(t *testing.T) {
	creator := new(MockCreator)
	publisher := new(MockPublisher)
	c := newController(creator, publisher)
	fillMinimal(t, c)

	creator.On("Create", mock.Anything, mock.Anything).Return(models.Succeeded(200, nil)).Once()
	publisher.On("PublishProductCreated", mock.Anything).Return(errors.New("broker down")).Once()

	result := c.Submit(context.Background())

	assert.Equal(t, form.StatusSuccess, result.Status)
	publisher.AssertExpectations(t)
}

func TestController_SecondSubmitWhileInFlightIsRejected(t *testing.T) {
	creator := new(MockCreator)
	c := newController(creator, nil)
	fillMinimal(t, c)

	started := make(chan struct{})
	release := make(chan struct{})
	creator.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return(models.Succeeded(201, nil)).Once()

	var wg sync.WaitGroup
	var first form.Result
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = c.Submit(context.Background())
	}()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("first submission never reached the creator")
	}
	assert.True(t, c.IsSubmitting())

	second := c.Submit(context.Background())
	assert.Equal(t, form.StatusBusy, second.Status)

	// Edits are still accepted during the call.
	require.NoError(t, c.SetField(models.FieldOwner, "me"))

	close(release)
	wg.Wait()

	assert.Equal(t, form.StatusSuccess, first.Status)
	assert.False(t, c.IsSubmitting())
	creator.AssertNumberOfCalls(t, "Create", 1)
}

func TestController_SetFields(t *testing.T) {
	c := newController(new(MockCreator), nil)

	err := c.SetFields(map[string]string{
		models.FieldName:     "Lamp",
		models.FieldPrice:    "20",
		models.FieldImages:   "lamp.png",
		models.FieldQuantity: "4",
	})
	require.NoError(t, err)

	d := c.Draft()
	assert.Equal(t, "Lamp", d.Name)
	assert.Equal(t, json.Number("20"), d.Price)
	assert.Equal(t, json.Number("4"), d.Quantity)
}
