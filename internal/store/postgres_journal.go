package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/samhotchkiss/sindicato-comms/internal/models"
)

// Querier is an interface for database query execution.
// Both *sql.DB and *sql.Tx implement this interface.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// OpenPostgres opens and pings a Postgres connection pool.
func OpenPostgres(databaseURL string) (*sql.DB, error) {
	dbURL := strings.TrimSpace(databaseURL)
	if dbURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// PostgresJournal mirrors the store into the tables created by the
// migrations package. Row order is kept by each table's seq column.
type PostgresJournal struct {
	db *sql.DB
}

func NewPostgresJournal(db *sql.DB) *PostgresJournal {
	return &PostgresJournal{db: db}
}

// Record applies one store event.
func (j *PostgresJournal) Record(ctx context.Context, event Event) error {
	if j == nil || j.db == nil {
		return errors.New("journal database not configured")
	}

	switch event.Entity {
	case EntityAll:
		snap, ok := event.Payload.(Snapshot)
		if !ok {
			return payloadError(event)
		}
		return j.replace(ctx, snap)
	case EntitySession:
		acting, ok := event.Payload.(models.Secretariat)
		if !ok {
			return payloadError(event)
		}
		return upsertSession(ctx, j.db, acting)
	case EntityActivity:
		if event.Kind == EventDeleted {
			return deleteRow(ctx, j.db, "activities", event.ID)
		}
		activity, ok := event.Payload.(models.Activity)
		if !ok {
			return payloadError(event)
		}
		return upsertActivity(ctx, j.db, activity)
	case EntityPressRelease:
		if event.Kind == EventDeleted {
			return deleteRow(ctx, j.db, "press_releases", event.ID)
		}
		release, ok := event.Payload.(models.PressRelease)
		if !ok {
			return payloadError(event)
		}
		return upsertPressRelease(ctx, j.db, release)
	case EntityContact:
		if event.Kind == EventDeleted {
			return deleteRow(ctx, j.db, "journalist_contacts", event.ID)
		}
		contact, ok := event.Payload.(models.JournalistContact)
		if !ok {
			return payloadError(event)
		}
		return upsertContact(ctx, j.db, contact)
	case EntityChannel:
		if event.Kind == EventDeleted {
			// channel_messages rows go with it via ON DELETE CASCADE.
			return deleteRow(ctx, j.db, "channels", event.ID)
		}
		channel, ok := event.Payload.(models.Channel)
		if !ok {
			return payloadError(event)
		}
		return upsertChannel(ctx, j.db, channel)
	case EntityMessage:
		message, ok := event.Payload.(models.Message)
		if !ok {
			return payloadError(event)
		}
		return insertMessage(ctx, j.db, event.ChannelID, message)
	}
	return fmt.Errorf("unsupported journal entity %q", event.Entity)
}

// replace rewrites every table from snap in one transaction.
func (j *PostgresJournal) replace(ctx context.Context, snap Snapshot) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"channel_messages", "channels", "journalist_contacts", "press_releases", "activities"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := upsertSession(ctx, tx, snap.ActingSecretariat); err != nil {
		return err
	}

	// Newest-first collections are inserted oldest first so seq DESC
	// reproduces the in-memory order.
	for i := len(snap.Activities) - 1; i >= 0; i-- {
		if err := upsertActivity(ctx, tx, snap.Activities[i]); err != nil {
			return err
		}
	}
	for i := len(snap.PressReleases) - 1; i >= 0; i-- {
		if err := upsertPressRelease(ctx, tx, snap.PressReleases[i]); err != nil {
			return err
		}
	}
	for i := len(snap.Contacts) - 1; i >= 0; i-- {
		if err := upsertContact(ctx, tx, snap.Contacts[i]); err != nil {
			return err
		}
	}
	for _, channel := range snap.Channels {
		if err := upsertChannel(ctx, tx, channel); err != nil {
			return err
		}
	}
	for _, channel := range snap.Channels {
		for _, message := range snap.Messages[channel.ID] {
			if err := insertMessage(ctx, tx, channel.ID, message); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit journal reset: %w", err)
	}
	return nil
}

// Load reads the journaled state. It reports false when the journal holds
// neither a session row nor any entity.
func (j *PostgresJournal) Load(ctx context.Context) (Snapshot, bool, error) {
	snap := Snapshot{Messages: make(map[string][]models.Message)}
	found := false

	var acting string
	err := j.db.QueryRowContext(ctx, `SELECT acting_secretariat FROM session_state WHERE singleton`).Scan(&acting)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return Snapshot{}, false, fmt.Errorf("failed to load session: %w", err)
	default:
		found = true
		snap.ActingSecretariat = models.Secretariat(acting)
	}

	if snap.Activities, err = loadActivities(ctx, j.db); err != nil {
		return Snapshot{}, false, err
	}
	if snap.PressReleases, err = loadPressReleases(ctx, j.db); err != nil {
		return Snapshot{}, false, err
	}
	if snap.Contacts, err = loadContacts(ctx, j.db); err != nil {
		return Snapshot{}, false, err
	}
	if snap.Channels, err = loadChannels(ctx, j.db); err != nil {
		return Snapshot{}, false, err
	}
	for _, channel := range snap.Channels {
		snap.Messages[channel.ID] = []models.Message{}
	}
	if err := loadMessages(ctx, j.db, snap.Messages); err != nil {
		return Snapshot{}, false, err
	}

	found = found || len(snap.Activities) > 0 || len(snap.PressReleases) > 0 ||
		len(snap.Contacts) > 0 || len(snap.Channels) > 0
	return snap, found, nil
}

func payloadError(event Event) error {
	return fmt.Errorf("unexpected payload %T for %s %s", event.Payload, event.Kind, event.Entity)
}

func deleteRow(ctx context.Context, q Querier, table, id string) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}

func upsertSession(ctx context.Context, q Querier, acting models.Secretariat) error {
	_, err := q.ExecContext(ctx, `INSERT INTO session_state (singleton, acting_secretariat)
		VALUES (TRUE, $1)
		ON CONFLICT (singleton) DO UPDATE SET acting_secretariat = EXCLUDED.acting_secretariat`,
		string(acting),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func upsertActivity(ctx context.Context, q Querier, activity models.Activity) error {
	tags := activity.RelevanceTags
	if tags == nil {
		tags = []string{}
	}
	_, err := q.ExecContext(ctx, `INSERT INTO activities
		(id, title, category, secretariat, description, relevance_tags, observations, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			secretariat = EXCLUDED.secretariat,
			description = EXCLUDED.description,
			relevance_tags = EXCLUDED.relevance_tags,
			observations = EXCLUDED.observations,
			recorded_at = EXCLUDED.recorded_at`,
		activity.ID,
		activity.Title,
		string(activity.Category),
		string(activity.Secretariat),
		activity.Description,
		pq.Array(tags),
		activity.Observations,
		activity.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}
	return nil
}

func upsertPressRelease(ctx context.Context, q Querier, release models.PressRelease) error {
	_, err := q.ExecContext(ctx, `INSERT INTO press_releases
		(id, secretariat, preheadline, headline, subheadline, lead, body, contact, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			secretariat = EXCLUDED.secretariat,
			preheadline = EXCLUDED.preheadline,
			headline = EXCLUDED.headline,
			subheadline = EXCLUDED.subheadline,
			lead = EXCLUDED.lead,
			body = EXCLUDED.body,
			contact = EXCLUDED.contact,
			recorded_at = EXCLUDED.recorded_at`,
		release.ID,
		string(release.Secretariat),
		release.Preheadline,
		release.Headline,
		release.Subheadline,
		release.Lead,
		release.Body,
		release.Contact,
		release.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to save press release: %w", err)
	}
	return nil
}

func upsertContact(ctx context.Context, q Querier, contact models.JournalistContact) error {
	_, err := q.ExecContext(ctx, `INSERT INTO journalist_contacts
		(id, name, media, phone, email, role, is_frequent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			media = EXCLUDED.media,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			role = EXCLUDED.role,
			is_frequent = EXCLUDED.is_frequent`,
		contact.ID,
		contact.Name,
		contact.Media,
		contact.Phone,
		contact.Email,
		contact.Role,
		contact.IsFrequent,
	)
	if err != nil {
		return fmt.Errorf("failed to save contact: %w", err)
	}
	return nil
}

func upsertChannel(ctx context.Context, q Querier, channel models.Channel) error {
	_, err := q.ExecContext(ctx, `INSERT INTO channels (id, name, description, icon)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			icon = EXCLUDED.icon`,
		channel.ID,
		channel.Name,
		channel.Description,
		string(channel.Icon),
	)
	if err != nil {
		return fmt.Errorf("failed to save channel: %w", err)
	}
	return nil
}

func insertMessage(ctx context.Context, q Querier, channelID string, message models.Message) error {
	_, err := q.ExecContext(ctx, `INSERT INTO channel_messages (id, channel_id, text, author, display_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`,
		message.ID,
		channelID,
		message.Text,
		string(message.Author),
		message.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

func loadActivities(ctx context.Context, q Querier) ([]models.Activity, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, title, category, secretariat, description, relevance_tags, observations, recorded_at
		FROM activities ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		var activity models.Activity
		var category, secretariat string
		var tags []string
		if err := rows.Scan(
			&activity.ID,
			&activity.Title,
			&category,
			&secretariat,
			&activity.Description,
			pq.Array(&tags),
			&activity.Observations,
			&activity.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activity.Category = models.ActivityCategory(category)
		activity.Secretariat = models.Secretariat(secretariat)
		activity.RelevanceTags = models.NormalizeRelevanceTags(tags)
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activities: %w", err)
	}
	return activities, nil
}

func loadPressReleases(ctx context.Context, q Querier) ([]models.PressRelease, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, secretariat, preheadline, headline, subheadline, lead, body, contact, recorded_at
		FROM press_releases ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load press releases: %w", err)
	}
	defer rows.Close()

	releases := []models.PressRelease{}
	for rows.Next() {
		var release models.PressRelease
		var secretariat string
		if err := rows.Scan(
			&release.ID,
			&secretariat,
			&release.Preheadline,
			&release.Headline,
			&release.Subheadline,
			&release.Lead,
			&release.Body,
			&release.Contact,
			&release.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan press release: %w", err)
		}
		release.Secretariat = models.Secretariat(secretariat)
		releases = append(releases, release)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read press releases: %w", err)
	}
	return releases, nil
}

func loadContacts(ctx context.Context, q Querier) ([]models.JournalistContact, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, media, phone, email, role, is_frequent
		FROM journalist_contacts ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	defer rows.Close()

	contacts := []models.JournalistContact{}
	for rows.Next() {
		var contact models.JournalistContact
		if err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Media,
			&contact.Phone,
			&contact.Email,
			&contact.Role,
			&contact.IsFrequent,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contacts: %w", err)
	}
	return contacts, nil
}

func loadChannels(ctx context.Context, q Querier) ([]models.Channel, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, description, icon FROM channels ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}
	defer rows.Close()

	channels := []models.Channel{}
	for rows.Next() {
		var channel models.Channel
		var icon string
		if err := rows.Scan(&channel.ID, &channel.Name, &channel.Description, &icon); err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channel.Icon = models.ChannelIcon(icon)
		channels = append(channels, channel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read channels: %w", err)
	}
	return channels, nil
}

func loadMessages(ctx context.Context, q Querier, into map[string][]models.Message) error {
	rows, err := q.QueryContext(ctx, `SELECT id, channel_id, text, author, display_time
		FROM channel_messages ORDER BY seq ASC`)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var message models.Message
		var channelID, author string
		if err := rows.Scan(&message.ID, &channelID, &message.Text, &author, &message.Timestamp); err != nil {
			return fmt.Errorf("failed to scan message: %w", err)
		}
		message.Author = models.Secretariat(author)
		into[channelID] = append(into[channelID], message)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read messages: %w", err)
	}
	return nil
}
