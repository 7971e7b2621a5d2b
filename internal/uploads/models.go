package uploads

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenProcure/procure/internal/workflow/model"
)

// Attachment is a proof-of-payment document (PI invoice, freight receipt,
// customs declaration, ...) attached to one step of a workflow item.
type Attachment struct {
	ID             uuid.UUID    `gorm:"type:uuid;column:id;not null;primaryKey" json:"id"`
	WorkflowItemID uuid.UUID    `gorm:"type:uuid;column:workflow_item_id;not null;index" json:"workflowItemId"`
	StepID         model.StepID `gorm:"type:varchar(50);column:step_id;not null" json:"stepId"`
	FileName       string       `gorm:"type:varchar(255);column:file_name;not null" json:"fileName"`
	Key            string       `gorm:"type:varchar(255);column:key;not null;uniqueIndex" json:"key"`
	URL            string       `gorm:"type:text;column:url" json:"url"`
	Size           int64        `gorm:"column:size;not null" json:"size"`
	ContentType    string       `gorm:"type:varchar(100);column:content_type" json:"contentType"`
	UploadedBy     string       `gorm:"type:varchar(255);column:uploaded_by" json:"uploadedBy"`
	CreatedAt      time.Time    `gorm:"type:timestamptz;column:created_at;not null" json:"createdAt"`
}

func (a *Attachment) TableName() string {
	return "step_attachments"
}

// BeforeCreate assigns a random UUID when none is set.
func (a *Attachment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewRandom()
		if err != nil {
			return err
		}
	}
	return nil
}
