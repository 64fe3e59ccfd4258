package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/folio"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ folio.RecordService = (*RecordService)(nil)

// RecordService implements folio.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// FindOrCreateRecord returns the record for url, creating it as pending if
// it does not exist. An existing record keeps its ID and status and takes
// the given platform.
func (s *RecordService) FindOrCreateRecord(ctx context.Context, url string, platform folio.Platform) (*folio.ScrapeRecord, error) {
	if platform == "" {
		platform = folio.PlatformGeneric
	}
	record := &folio.ScrapeRecord{URL: url, Platform: platform, Status: folio.StatusPending}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	now := formatTime(time.Now())
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scrape_records (id, url, platform, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (url) DO UPDATE SET platform = excluded.platform, updated_at = excluded.updated_at
	`, uuid.New().String(), url, string(platform), string(folio.StatusPending), now, now)
	if err != nil {
		return nil, err
	}

	return s.FindRecordByURL(ctx, url)
}

// ReplaceChildren deletes the content detail and every child collection of
// the record and writes cs in their place, in one transaction.
func (s *RecordService) ReplaceChildren(ctx context.Context, id string, cs *folio.ChangeSet) error {
	if cs == nil {
		cs = &folio.ChangeSet{}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer rollback(tx)

	if err := touchRecord(ctx, tx, id); err != nil {
		return err
	}

	for _, table := range []string{"content_details", "images", "videos", "social_links", "contact_infos"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE record_id = ?", id); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if cs.Content != nil {
		if err := insertContent(ctx, tx, id, cs.Content); err != nil {
			return err
		}
	}

	for i, img := range cs.Images {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO images (record_id, position, src, alt, title) VALUES (?, ?, ?, ?, ?)
		`, id, i, img.Src, img.Alt, img.Title); err != nil {
			return fmt.Errorf("failed to insert image: %w", err)
		}
	}

	for i, v := range cs.Videos {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO videos (record_id, position, type, src, poster, allow_fullscreen, sandbox)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, i, string(v.Type), v.Src, v.Poster, v.AllowFullscreen, v.Sandbox); err != nil {
			return fmt.Errorf("failed to insert video: %w", err)
		}
	}

	for i, l := range cs.SocialLinks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO social_links (record_id, position, platform, username, url, kind) VALUES (?, ?, ?, ?, ?, ?)
		`, id, i, string(l.Platform), l.Username, l.URL, string(l.Kind)); err != nil {
			return fmt.Errorf("failed to insert social link: %w", err)
		}
	}

	for i, c := range cs.ContactInfos {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO contact_infos (record_id, position, type, value) VALUES (?, ?, ?, ?)
		`, id, i, string(c.Type), c.Value); err != nil {
			return fmt.Errorf("failed to insert contact info: %w", err)
		}
	}

	return tx.Commit()
}

// SetStatus updates the record status.
func (s *RecordService) SetStatus(ctx context.Context, id string, status folio.Status) error {
	if !status.Valid() {
		return folio.Errorf(folio.EINVALID, "unknown status %q", status)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE scrape_records SET status = ?, updated_at = ? WHERE id = ?
	`, string(status), formatTime(time.Now()), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return folio.Errorf(folio.ENOTFOUND, "record not found")
	}
	return nil
}

// FindRecordByID retrieves a record and its children.
func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*folio.ScrapeRecord, error) {
	return s.findRecord(ctx, "id", id)
}

// FindRecordByURL retrieves a record and its children by source URL.
func (s *RecordService) FindRecordByURL(ctx context.Context, url string) (*folio.ScrapeRecord, error) {
	return s.findRecord(ctx, "url", url)
}

// FindRecords retrieves records matching the filter, newest first. The
// content detail is loaded; child collections are not.
func (s *RecordService) FindRecords(ctx context.Context, filter folio.RecordFilter) ([]*folio.ScrapeRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString(recordColumns + " WHERE 1=1")

	if filter.Platform != nil {
		query.WriteString(" AND platform = ?")
		args = append(args, string(*filter.Platform))
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*folio.ScrapeRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for _, record := range records {
		if record.Content, err = loadContent(ctx, s.db, record.ID); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// DeleteRecord permanently removes a record. Children are removed by
// cascade.
func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM scrape_records WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return folio.Errorf(folio.ENOTFOUND, "record not found")
	}
	return nil
}

const recordColumns = "SELECT id, url, platform, status, created_at, updated_at FROM scrape_records"

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*folio.ScrapeRecord, error) {
	var record folio.ScrapeRecord
	var createdAt, updatedAt string

	if err := row.Scan(&record.ID, &record.URL, &record.Platform, &record.Status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if record.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if record.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *RecordService) findRecord(ctx context.Context, column, value string) (*folio.ScrapeRecord, error) {
	record, err := scanRecord(s.db.QueryRowContext(ctx, recordColumns+" WHERE "+column+" = ?", value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, folio.Errorf(folio.ENOTFOUND, "record not found")
	}
	if err != nil {
		return nil, err
	}

	if record.Content, err = loadContent(ctx, s.db, record.ID); err != nil {
		return nil, err
	}
	if err := loadChildren(ctx, s.db, record); err != nil {
		return nil, err
	}
	return record, nil
}

// touchRecord bumps updated_at and reports ENOTFOUND for unknown records.
func touchRecord(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := tx.ExecContext(ctx, "UPDATE scrape_records SET updated_at = ? WHERE id = ?", formatTime(time.Now()), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return folio.Errorf(folio.ENOTFOUND, "record not found")
	}
	return nil
}

func insertContent(ctx context.Context, tx *sql.Tx, id string, c *folio.ContentDetail) error {
	descriptions, err := marshalJSON(c.Descriptions, "[]")
	if err != nil {
		return err
	}
	metadata, err := marshalJSON(c.Metadata, "{}")
	if err != nil {
		return err
	}
	blocks, err := marshalJSON(c.Blocks, "[]")
	if err != nil {
		return err
	}
	sections, err := marshalJSON(c.Sections, "[]")
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO content_details (record_id, title, description, descriptions, metadata, blocks, sections, article, content_hash, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, c.Title, c.Description, descriptions, metadata, blocks, sections, c.Article, c.Hash, c.Error)
	if err != nil {
		return fmt.Errorf("failed to insert content detail: %w", err)
	}
	return nil
}

func loadContent(ctx context.Context, q queryer, id string) (*folio.ContentDetail, error) {
	var c folio.ContentDetail
	var descriptions, metadata, blocks, sections string

	err := q.QueryRowContext(ctx, `
		SELECT title, description, descriptions, metadata, blocks, sections, article, content_hash, error
		FROM content_details
		WHERE record_id = ?
	`, id).Scan(&c.Title, &c.Description, &descriptions, &metadata, &blocks, &sections, &c.Article, &c.Hash, &c.Error)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := unmarshalJSON(descriptions, "descriptions", &c.Descriptions); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(metadata, "metadata", &c.Metadata); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(blocks, "blocks", &c.Blocks); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(sections, "sections", &c.Sections); err != nil {
		return nil, err
	}
	return &c, nil
}

func loadChildren(ctx context.Context, q queryer, record *folio.ScrapeRecord) error {
	record.Images = []folio.Image{}
	record.Videos = []folio.Video{}
	record.SocialLinks = []folio.SocialLink{}
	record.ContactInfos = []folio.ContactInfo{}

	err := eachRow(ctx, q, "SELECT src, alt, title FROM images WHERE record_id = ? ORDER BY position", record.ID, func(rows *sql.Rows) error {
		var img folio.Image
		if err := rows.Scan(&img.Src, &img.Alt, &img.Title); err != nil {
			return err
		}
		record.Images = append(record.Images, img)
		return nil
	})
	if err != nil {
		return err
	}

	err = eachRow(ctx, q, "SELECT type, src, poster, allow_fullscreen, sandbox FROM videos WHERE record_id = ? ORDER BY position", record.ID, func(rows *sql.Rows) error {
		var v folio.Video
		if err := rows.Scan(&v.Type, &v.Src, &v.Poster, &v.AllowFullscreen, &v.Sandbox); err != nil {
			return err
		}
		record.Videos = append(record.Videos, v)
		return nil
	})
	if err != nil {
		return err
	}

	err = eachRow(ctx, q, "SELECT platform, username, url, kind FROM social_links WHERE record_id = ? ORDER BY position", record.ID, func(rows *sql.Rows) error {
		var l folio.SocialLink
		if err := rows.Scan(&l.Platform, &l.Username, &l.URL, &l.Kind); err != nil {
			return err
		}
		record.SocialLinks = append(record.SocialLinks, l)
		return nil
	})
	if err != nil {
		return err
	}

	return eachRow(ctx, q, "SELECT type, value FROM contact_infos WHERE record_id = ? ORDER BY position", record.ID, func(rows *sql.Rows) error {
		var c folio.ContactInfo
		if err := rows.Scan(&c.Type, &c.Value); err != nil {
			return err
		}
		record.ContactInfos = append(record.ContactInfos, c)
		return nil
	})
}

// eachRow runs fn for every row of query and closes the rows.
func eachRow(ctx context.Context, q queryer, query string, arg any, fn func(*sql.Rows) error) error {
	rows, err := q.QueryContext(ctx, query, arg)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
