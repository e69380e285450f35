// Package database хранит историю прогонов в PostgreSQL.
// Использует GORM ORM с prepared statements.
package database

import "time"

// Run представляет один прогон: сбор таблицы и экспорт или набор проверок.
// Статусы: running, completed, failed.
type Run struct {
	ID          uint      `gorm:"primaryKey"`
	Kind        string    `gorm:"type:varchar(16);not null"`                   // scrape или check
	Status      string    `gorm:"type:varchar(32);not null;default:'running'"` // Статус выполнения
	SourceURL   string    `gorm:"type:text"`
	OutputDir   string    `gorm:"type:text"`
	RowsSeen    int       // Строк в таблице
	RowsParsed  int       // Разобранных записей
	RowsDropped int       // Пропущенных строк
	Summary     string    `gorm:"type:text"` // Итог или текст ошибки
	StartedAt   time.Time `gorm:"autoCreateTime"`
	FinishedAt  *time.Time
}

// RegionExport файл, записанный в рамках прогона
type RegionExport struct {
	ID        uint      `gorm:"primaryKey"`
	RunID     uint      `gorm:"index;not null"`
	Region    string    `gorm:"type:varchar(64);not null"` // Регион или all для общего файла
	Rows      int       `gorm:"not null"`
	FilePath  string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// CheckResult результат одной проверки
type CheckResult struct {
	ID             uint   `gorm:"primaryKey"`
	RunID          uint   `gorm:"index;not null"`
	Name           string `gorm:"type:varchar(128);not null"`
	Status         string `gorm:"type:varchar(16);not null"` // pass или fail
	Message        string `gorm:"type:text"`
	ScreenshotPath string `gorm:"type:text"`
	DurationMs     int64
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}
