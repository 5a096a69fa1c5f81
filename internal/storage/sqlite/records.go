package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/ascend/internal/models"
)

// ErrNotFound is returned when no record exists for the user. The storage
// wrapper translates it to the package-level sentinel.
var ErrNotFound = errors.New("record not found")

func (s *Store) GetRecord(userID string) (models.ChallengeRecord, error) {
	row := s.db.QueryRow(`
		SELECT current_day, start_date
		FROM records WHERE user_id = ?`, userID)

	var rec models.ChallengeRecord
	var startDate string

	err := row.Scan(&rec.CurrentDay, &startDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ChallengeRecord{}, ErrNotFound
		}
		return models.ChallengeRecord{}, err
	}

	rec.StartDate, err = time.Parse(time.RFC3339, startDate)
	if err != nil {
		return models.ChallengeRecord{}, fmt.Errorf("failed to parse start_date: %w", err)
	}

	rec.DailyLogs, err = s.getDailyLogs(userID)
	if err != nil {
		return models.ChallengeRecord{}, err
	}
	rec.History, err = s.getAttempts(userID)
	if err != nil {
		return models.ChallengeRecord{}, err
	}

	return rec, nil
}

func (s *Store) getDailyLogs(userID string) ([]models.DayLog, error) {
	rows, err := s.db.Query(`
		SELECT day, date, workout1, workout2, diet, reading, skill, water, photo
		FROM daily_logs WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.DayLog{}
	for rows.Next() {
		var log models.DayLog
		var date string

		err := rows.Scan(&log.Day, &date,
			&log.Tasks.Workout1, &log.Tasks.Workout2, &log.Tasks.Diet,
			&log.Tasks.Reading, &log.Tasks.Skill, &log.Tasks.Water,
			&log.Tasks.Photo)
		if err != nil {
			return nil, err
		}

		log.Date, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse log date: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func (s *Store) getAttempts(userID string) ([]models.AttemptRecord, error) {
	rows, err := s.db.Query(`
		SELECT start_date, end_date, status, days
		FROM attempts WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := []models.AttemptRecord{}
	for rows.Next() {
		var a models.AttemptRecord
		var startDate, endDate, status string

		if err := rows.Scan(&startDate, &endDate, &status, &a.Days); err != nil {
			return nil, err
		}

		a.StartDate, err = time.Parse(time.RFC3339, startDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse attempt start_date: %w", err)
		}
		a.EndDate, err = time.Parse(time.RFC3339, endDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse attempt end_date: %w", err)
		}
		a.Status = models.AttemptStatus(status)
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}

// SaveRecord replaces the user's whole record in one transaction. Writes
// are whole-document and last-write-wins, matching the other backends.
func (s *Store) SaveRecord(userID string, rec models.ChallengeRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO records (user_id, current_day, start_date)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			current_day = excluded.current_day,
			start_date = excluded.start_date`,
		userID, rec.CurrentDay, rec.StartDate.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM daily_logs WHERE user_id = ?", userID); err != nil {
		return err
	}
	for _, log := range rec.DailyLogs {
		_, err := tx.Exec(`
			INSERT INTO daily_logs (user_id, day, date, workout1, workout2, diet, reading, skill, water, photo)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, log.Day, log.Date.UTC().Format(time.RFC3339),
			log.Tasks.Workout1, log.Tasks.Workout2, log.Tasks.Diet,
			log.Tasks.Reading, log.Tasks.Skill, log.Tasks.Water,
			log.Tasks.Photo)
		if err != nil {
			return err
		}
	}

	if _, err := tx.Exec("DELETE FROM attempts WHERE user_id = ?", userID); err != nil {
		return err
	}
	for _, a := range rec.History {
		_, err := tx.Exec(`
			INSERT INTO attempts (user_id, start_date, end_date, status, days)
			VALUES (?, ?, ?, ?, ?)`,
			userID, a.StartDate.UTC().Format(time.RFC3339),
			a.EndDate.UTC().Format(time.RFC3339), string(a.Status), a.Days)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) DeleteRecord(userID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM records WHERE user_id = ?", userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	// SQLite only enforces ON DELETE CASCADE with foreign keys enabled, so
	// clear the child tables explicitly.
	if _, err := tx.Exec("DELETE FROM daily_logs WHERE user_id = ?", userID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM attempts WHERE user_id = ?", userID); err != nil {
		return err
	}

	return tx.Commit()
}
