package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/model"
)

// FileStore 以 JSON 文件保存悬赏快照和报告快照，每次写入整体覆盖
type FileStore struct {
	bountiesPath string
	reportPath   string
}

// NewFileStore 创建 FileStore，文件位于 dir 下
func NewFileStore(dir, bountiesFile, reportFile string) *FileStore {
	return &FileStore{
		bountiesPath: filepath.Join(dir, bountiesFile),
		reportPath:   filepath.Join(dir, reportFile),
	}
}

func (s *FileStore) BountiesPath() string { return s.bountiesPath }

func (s *FileStore) ReportPath() string { return s.reportPath }

// BountiesExist 悬赏快照是否存在
func (s *FileStore) BountiesExist() bool {
	_, err := os.Stat(s.bountiesPath)
	return err == nil
}

// SaveBounties 覆盖写入悬赏快照
func (s *FileStore) SaveBounties(_ context.Context, bounties []model.BountyRecord) error {
	if bounties == nil {
		bounties = []model.BountyRecord{}
	}
	return writeJSON(s.bountiesPath, bounties)
}

// LoadBounties 读取悬赏快照；文件不存在时返回 MissingInput
func (s *FileStore) LoadBounties(_ context.Context) ([]model.BountyRecord, error) {
	data, err := os.ReadFile(s.bountiesPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, model.MissingInput(err, "no bounty snapshot at %s, run collect first", s.bountiesPath)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %q: %w", s.bountiesPath, err)
	}

	var bounties []model.BountyRecord
	if err := json.Unmarshal(data, &bounties); err != nil {
		return nil, fmt.Errorf("storage: unmarshal %q: %w", s.bountiesPath, err)
	}
	if bounties == nil {
		bounties = []model.BountyRecord{}
	}
	return bounties, nil
}

// SaveReport 覆盖写入报告快照
func (s *FileStore) SaveReport(_ context.Context, report *model.Report) error {
	if report == nil {
		return fmt.Errorf("storage: nil report")
	}
	return writeJSON(s.reportPath, report)
}

// LoadReport 读取报告快照
func (s *FileStore) LoadReport(_ context.Context) (*model.Report, error) {
	data, err := os.ReadFile(s.reportPath)
	if err != nil {
		return nil, fmt.Errorf("storage: read %q: %w", s.reportPath, err)
	}
	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("storage: unmarshal %q: %w", s.reportPath, err)
	}
	return &report, nil
}

// writeJSON 先写同目录临时文件再 rename，失败时不会留下半截快照
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("storage: marshal %q: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: create dir %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp for %q: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // rename 成功后为空操作

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: write %q: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: sync %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close %q: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("storage: chmod %q: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("storage: rename %q: %w", path, err)
	}
	return nil
}
