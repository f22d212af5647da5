package entity

import "time"

// FeedFileAudit records that a feed file has been ingested. The presence
// of a row for a file name is the sole proof of ingestion; audited files
// are never reprocessed.
type FeedFileAudit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FileName  string    `gorm:"size:256;uniqueIndex;not null" json:"file_name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FeedFileAudit) TableName() string {
	return "feed_file_audits"
}
