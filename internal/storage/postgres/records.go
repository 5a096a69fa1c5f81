package postgres

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/ascend/internal/models"
)

func (s *Store) GetRecord(userID string) (models.ChallengeRecord, error) {
	row := s.db.QueryRow(`
		SELECT current_day, start_date
		FROM records WHERE user_id = $1`, userID)

	var rec models.ChallengeRecord

	err := row.Scan(&rec.CurrentDay, &rec.StartDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ChallengeRecord{}, ErrNotFound
		}
		return models.ChallengeRecord{}, err
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
		FROM daily_logs WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.DayLog{}
	for rows.Next() {
		var log models.DayLog
		err := rows.Scan(&log.Day, &log.Date,
			&log.Tasks.Workout1, &log.Tasks.Workout2, &log.Tasks.Diet,
			&log.Tasks.Reading, &log.Tasks.Skill, &log.Tasks.Water,
			&log.Tasks.Photo)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func (s *Store) getAttempts(userID string) ([]models.AttemptRecord, error) {
	rows, err := s.db.Query(`
		SELECT start_date, end_date, status, days
		FROM attempts WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := []models.AttemptRecord{}
	for rows.Next() {
		var a models.AttemptRecord
		var status string
		if err := rows.Scan(&a.StartDate, &a.EndDate, &status, &a.Days); err != nil {
			return nil, err
		}
		a.Status = models.AttemptStatus(status)
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}

// SaveRecord replaces the user's whole record in one transaction.
func (s *Store) SaveRecord(userID string, rec models.ChallengeRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO records (user_id, current_day, start_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			current_day = EXCLUDED.current_day,
			start_date = EXCLUDED.start_date`,
		userID, rec.CurrentDay, rec.StartDate.UTC())
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM daily_logs WHERE user_id = $1", userID); err != nil {
		return err
	}
	for _, log := range rec.DailyLogs {
		_, err := tx.Exec(`
			INSERT INTO daily_logs (user_id, day, date, workout1, workout2, diet, reading, skill, water, photo)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			userID, log.Day, log.Date.UTC(),
			log.Tasks.Workout1, log.Tasks.Workout2, log.Tasks.Diet,
			log.Tasks.Reading, log.Tasks.Skill, log.Tasks.Water,
			log.Tasks.Photo)
		if err != nil {
			return err
		}
	}

	if _, err := tx.Exec("DELETE FROM attempts WHERE user_id = $1", userID); err != nil {
		return err
	}
	for _, a := range rec.History {
		_, err := tx.Exec(`
			INSERT INTO attempts (user_id, start_date, end_date, status, days)
			VALUES ($1, $2, $3, $4, $5)`,
			userID, a.StartDate.UTC(), a.EndDate.UTC(), string(a.Status), a.Days)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) DeleteRecord(userID string) error {
	res, err := s.db.Exec("DELETE FROM records WHERE user_id = $1", userID)
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
	return nil
}
