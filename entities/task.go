package entities

type Task struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CropID    *int64  `json:"crop_id"` // sqlite INTEGER; not checked against crops
	TaskName  string  `gorm:"not null" json:"task_name"`
	DueDate   *string `json:"due_date"` // YYYY-MM-DD
	Completed bool    `json:"completed"`
}

// TaskWithCropName is one row of the task listing joined to crops.
type TaskWithCropName struct {
	Task
	CropName *string `json:"crop_name"`
}
