package handlers

import (
	"context"

	"calcapi/internal/models"
	"calcapi/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser  *models.User
	signUpErr   error
	tokenValue  string
	tokenErr    error
	parseID     int
	parseErr    error
	currentUser *models.User
	currentErr  error

	lastSignUpInput service.RegisterInput
	lastIdentifier  string
	lastPassword    string
	lastParseToken  string
	lastCurrentID   int
}

func (m *mockAuth) SignUp(ctx context.Context, input service.RegisterInput) (*models.User, error) {
	m.lastSignUpInput = input
	return m.signUpUser, m.signUpErr
}

func (m *mockAuth) GenerateToken(ctx context.Context, identifier, password string) (string, error) {
	m.lastIdentifier = identifier
	m.lastPassword = password
	return m.tokenValue, m.tokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) CurrentUser(ctx context.Context, userID int) (*models.User, error) {
	m.lastCurrentID = userID
	return m.currentUser, m.currentErr
}

type mockCalculations struct {
	createCalc *models.Calculation
	createErr  error
	getCalc    *models.Calculation
	getErr     error
	listCalcs  []models.Calculation
	listErr    error
	updateCalc *models.Calculation
	updateErr  error
	deleteErr  error

	lastOwnerID int
	lastID      string
	lastSpec    service.CalculationSpec
	lastOffset  int
	lastLimit   int
}

func (m *mockCalculations) Create(ctx context.Context, ownerID int, spec service.CalculationSpec) (*models.Calculation, error) {
	m.lastOwnerID = ownerID
	m.lastSpec = spec
	return m.createCalc, m.createErr
}

func (m *mockCalculations) Get(ctx context.Context, ownerID int, id string) (*models.Calculation, error) {
	m.lastOwnerID = ownerID
	m.lastID = id
	return m.getCalc, m.getErr
}

func (m *mockCalculations) List(ctx context.Context, ownerID, offset, limit int) ([]models.Calculation, error) {
	m.lastOwnerID = ownerID
	m.lastOffset = offset
	m.lastLimit = limit
	return m.listCalcs, m.listErr
}

func (m *mockCalculations) Update(ctx context.Context, ownerID int, id string, spec service.CalculationSpec) (*models.Calculation, error) {
	m.lastOwnerID = ownerID
	m.lastID = id
	m.lastSpec = spec
	return m.updateCalc, m.updateErr
}

func (m *mockCalculations) Delete(ctx context.Context, ownerID int, id string) error {
	m.lastOwnerID = ownerID
	m.lastID = id
	return m.deleteErr
}

type mockStats struct {
	stats models.CalculationStats
	err   error

	lastOwnerID int
}

func (m *mockStats) Stats(ctx context.Context, ownerID int) (models.CalculationStats, error) {
	m.lastOwnerID = ownerID
	return m.stats, m.err
}
