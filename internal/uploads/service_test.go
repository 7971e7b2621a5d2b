package uploads

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/OpenProcure/procure/internal/workflow/model"
)

// MockDriver implements StorageDriver for testing
type MockDriver struct {
	SavedKey       string
	SavedBody      []byte
	GenerateURLErr error
	DeleteCalled   bool
	DeleteKey      string
}

func (m *MockDriver) Save(ctx context.Context, key string, body io.Reader, contentType string) error {
	m.SavedKey = key
	content, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.SavedBody = content
	return nil
}

func (m *MockDriver) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return io.NopCloser(bytes.NewReader(m.SavedBody)), "application/test", nil
}

func (m *MockDriver) Delete(ctx context.Context, key string) error {
	m.DeleteCalled = true
	m.DeleteKey = key
	return nil
}

func (m *MockDriver) GenerateURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if m.GenerateURLErr != nil {
		return "", m.GenerateURLErr
	}
	return "/test/" + key, nil
}

// stubItemProvider returns a fixed item for any ID.
type stubItemProvider struct {
	item *model.WorkflowItem
	err  error
}

func (p *stubItemProvider) GetItemByID(ctx context.Context, itemID uuid.UUID) (*model.WorkflowItem, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.item, nil
}

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	return db, sqlMock
}

func airFreightItem() *model.WorkflowItem {
	return &model.WorkflowItem{
		BaseModel:     model.BaseModel{ID: uuid.New()},
		ProductType:   model.ProductTypeIMP,
		ProductName:   "Espresso machine",
		Quantity:      1,
		SupplierName:  "Brew Co",
		BranchChoice:  model.BranchAir,
		CurrentStepID: model.StepPayAirFreight,
	}
}

func TestAttachmentService_Attach(t *testing.T) {
	db, sqlMock := setupTestDB(t)
	mock := &MockDriver{}
	item := airFreightItem()
	service := NewAttachmentService(db, mock, &stubItemProvider{item: item})

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(`INSERT INTO "step_attachments"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectCommit()

	ctx := context.Background()
	content := []byte("payment receipt")

	attachment, err := service.Attach(ctx, item.ID, model.StepPayAirFreight, "receipt.pdf",
		bytes.NewReader(content), int64(len(content)), "application/pdf", "alex")
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	if attachment.FileName != "receipt.pdf" {
		t.Errorf("expected file name receipt.pdf, got %s", attachment.FileName)
	}
	if attachment.StepID != model.StepPayAirFreight {
		t.Errorf("unexpected step id: %s", attachment.StepID)
	}
	if !bytes.Equal(mock.SavedBody, content) {
		t.Error("saved body does not match input")
	}
	if attachment.URL != "/test/"+mock.SavedKey {
		t.Errorf("unexpected URL: %s", attachment.URL)
	}
	if err := sqlMock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet database expectations: %v", err)
	}
}

func TestAttachmentService_Attach_StepOutsidePath(t *testing.T) {
	db, _ := setupTestDB(t)
	mock := &MockDriver{}
	item := airFreightItem()
	service := NewAttachmentService(db, mock, &stubItemProvider{item: item})

	ctx := context.Background()
	content := []byte("payment receipt")

	// Sea freight is not part of an air branch path.
	_, err := service.Attach(ctx, item.ID, model.StepPaySeaFreight, "receipt.pdf",
		bytes.NewReader(content), int64(len(content)), "application/pdf", "alex")
	if err == nil {
		t.Fatal("expected Attach to reject a step outside the resolved path")
	}
	if mock.SavedKey != "" {
		t.Error("expected nothing to be written to storage")
	}
}

func TestAttachmentService_Attach_GenerateURLFailure(t *testing.T) {
	db, _ := setupTestDB(t)
	mock := &MockDriver{GenerateURLErr: io.ErrUnexpectedEOF}
	item := airFreightItem()
	service := NewAttachmentService(db, mock, &stubItemProvider{item: item})

	ctx := context.Background()
	content := []byte("payment receipt")

	_, err := service.Attach(ctx, item.ID, model.StepPayAirFreight, "receipt.pdf",
		bytes.NewReader(content), int64(len(content)), "application/pdf", "alex")
	if err == nil {
		t.Fatal("expected Attach to fail when GenerateURL fails")
	}
	if !mock.DeleteCalled {
		t.Error("expected Delete to be called to cleanup orphaned file")
	}
	if mock.DeleteKey != mock.SavedKey {
		t.Errorf("expected Delete to be called with key %s, got %s", mock.SavedKey, mock.DeleteKey)
	}
}

func TestAttachmentService_ListByItem(t *testing.T) {
	db, sqlMock := setupTestDB(t)
	item := airFreightItem()
	service := NewAttachmentService(db, &MockDriver{}, &stubItemProvider{item: item})

	rows := sqlmock.NewRows([]string{"id", "workflow_item_id", "step_id", "file_name", "key"}).
		AddRow(uuid.New(), item.ID, "pay_air_freight", "receipt.pdf", "abc.pdf")
	sqlMock.ExpectQuery(`SELECT \* FROM "step_attachments" WHERE workflow_item_id = \$1`).
		WithArgs(item.ID).
		WillReturnRows(rows)

	attachments, err := service.ListByItem(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("ListByItem failed: %v", err)
	}
	if len(attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(attachments))
	}
	if attachments[0].FileName != "receipt.pdf" {
		t.Errorf("unexpected file name: %s", attachments[0].FileName)
	}
}

func TestAttachmentService_Download(t *testing.T) {
	db, _ := setupTestDB(t)
	mock := &MockDriver{SavedBody: []byte("test content")}
	service := NewAttachmentService(db, mock, &stubItemProvider{})

	reader, contentType, err := service.Download(context.Background(), "test-key")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	defer reader.Close()

	if contentType != "application/test" {
		t.Errorf("expected content type application/test, got %s", contentType)
	}
	content, _ := io.ReadAll(reader)
	if !bytes.Equal(content, mock.SavedBody) {
		t.Error("downloaded content does not match saved body")
	}
}
