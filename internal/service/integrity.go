package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/saadjs/lifelog/internal/metrics"
	"github.com/saadjs/lifelog/internal/model"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type MealLogMismatch struct {
	ID            string                `json:"id"`
	Date          string                `json:"date"`
	Discrepancies []metrics.Discrepancy `json:"discrepancies"`
}

type DoctorReport struct {
	CheckedLogs     int               `json:"checked_logs"`
	Mismatches      []MealLogMismatch `json:"mismatches,omitempty"`
	InvalidDates    []string          `json:"invalid_dates,omitempty"`
	MissingFoodRefs int               `json:"missing_food_refs"`
	FixedLogs       int               `json:"fixed_logs,omitempty"`
}

func (r DoctorReport) Healthy() bool {
	return len(r.Mismatches) == 0 && len(r.InvalidDates) == 0 && r.MissingFoodRefs == 0
}

// RunDoctor checks every meal log's stored totals against its items.
// With fix set, mismatched totals are rewritten from the items.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}
	logs, err := ListMealLogs(db, MealLogFilter{})
	if err != nil {
		return report, fmt.Errorf("doctor load meal logs: %w", err)
	}
	report.CheckedLogs = len(logs)
	log.Debugf("doctor checking %d meal logs", len(logs))

	byID := make(map[string]model.MealLogEntry, len(logs))
	for _, l := range logs {
		byID[l.ID] = l
		if _, err := normalizeMealDate(l.Date, time.Time{}); err != nil || strings.TrimSpace(l.Date) == "" {
			report.InvalidDates = append(report.InvalidDates, l.ID)
		}
		if d := metrics.ReconcileMealLog(l); len(d) > 0 {
			report.Mismatches = append(report.Mismatches, MealLogMismatch{ID: l.ID, Date: l.Date, Discrepancies: d})
		}
	}

	if err := db.QueryRow(`
SELECT COUNT(1)
FROM meal_items i
LEFT JOIN foods f ON f.id = i.food_id
WHERE i.food_id <> '' AND f.id IS NULL
`).Scan(&report.MissingFoodRefs); err != nil {
		return report, fmt.Errorf("doctor food reference check: %w", err)
	}

	if fix && len(report.Mismatches) > 0 {
		tx, err := db.Begin()
		if err != nil {
			return report, fmt.Errorf("doctor fix begin tx: %w", err)
		}
		for _, m := range report.Mismatches {
			totals := metrics.BuildMealTotals(byID[m.ID].Items)
			if _, err := tx.Exec(`
UPDATE meal_logs
SET total_calories = ?, total_protein = ?, total_carbs = ?, total_fats = ?, updated_at = ?
WHERE id = ?
`, totals.Calories, totals.Protein, totals.Carbs, totals.Fats, formatTimestamp(time.Now()), m.ID); err != nil {
				_ = tx.Rollback()
				return report, fmt.Errorf("doctor fix meal log %s: %w", m.ID, err)
			}
			report.FixedLogs++
		}
		if err := tx.Commit(); err != nil {
			return report, fmt.Errorf("doctor fix commit: %w", err)
		}
		log.Debugf("doctor rewrote totals for %d meal logs", report.FixedLogs)
	}

	return report, nil
}

// CreateBackup writes a consistent copy of the open database and a .sha256 sidecar.
func CreateBackup(db *sql.DB, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if _, err := os.Stat(outPath); err == nil {
		return BackupInfo{}, fmt.Errorf("backup %s already exists", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if _, err := db.Exec(`VACUUM INTO ?`, outPath); err != nil {
		return BackupInfo{}, fmt.Errorf("vacuum into backup: %w", err)
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

// RestoreBackup verifies the sidecar checksum when present and copies the backup over dbPath.
func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

// ListBackups returns the .db files in dir, newest first.
func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination file: %w", err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
