package model

const TableNameNote = "notes"

// Note mapped from table <notes>
type Note struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	Title      string `gorm:"column:title;type:varchar(255);not null" json:"title" form:"title"`
	TextNote   string `gorm:"column:text_note;type:text;not null" json:"textNote" form:"textNote"`
	DateCreate string `gorm:"column:date_create;type:varchar(64)" json:"dateCreate" form:"dateCreate"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
