package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/openreportkit/backend/internal/model"
)

// fileRegistry 文件存储实现：每个模板一个 <id>.json，平铺在一个目录下
// 同进程内用互斥锁串行化写入，跨进程并发按 last-writer-wins 处理
type fileRegistry struct {
	dir string
	mu  sync.Mutex
}

// NewFileRegistry 创建文件存储的注册中心，目录不存在时自动创建
func NewFileRegistry(dir string) (Registry, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create template directory: %w", err)
	}
	return &fileRegistry{dir: dir}, nil
}

// Save 保存模板，ID 缺失时生成并补时间戳
func (r *fileRegistry) Save(tpl *model.ReportTemplate) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
		tpl.CreatedAt = now
	}
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = now
	}
	tpl.UpdatedAt = now

	data, err := model.MarshalTemplate(tpl)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(r.path(tpl.ID), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write template file: %w", err)
	}

	klog.V(6).Infof("模板已保存: id=%s name=%s", tpl.ID, tpl.Name)
	return tpl.ID, nil
}

// Load 按 ID 加载模板
// 文件不存在返回 ErrNotFound；JSON 损坏是硬错误，原样上抛
func (r *fileRegistry) Load(id string) (*model.ReportTemplate, error) {
	data, err := os.ReadFile(r.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	tpl, err := model.UnmarshalTemplate(data)
	if err != nil {
		return nil, err
	}
	return tpl, nil
}

// Delete 删除模板，返回是否真的删掉了
func (r *fileRegistry) Delete(id string) (bool, error) {
	err := os.Remove(r.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete template file: %w", err)
	}
	return true, nil
}

// List 列出模板摘要，按 UpdatedAt 倒序
// 单个文件损坏只记日志跳过，不影响其余模板
func (r *fileRegistry) List(filter ListFilter) ([]Summary, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read template directory: %w", err)
	}

	summaries := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			klog.Errorf("读取模板文件失败，跳过: file=%s err=%v", entry.Name(), err)
			continue
		}

		tpl, err := model.UnmarshalTemplate(data)
		if err != nil {
			klog.Errorf("模板文件损坏，跳过: file=%s err=%v", entry.Name(), err)
			continue
		}

		s := toSummary(tpl)
		if matchFilter(s, filter) {
			summaries = append(summaries, s)
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

// Duplicate 复制模板：清掉身份和时间戳后重新保存
func (r *fileRegistry) Duplicate(id, newName string) (string, error) {
	tpl, err := r.Load(id)
	if err != nil {
		return "", err
	}

	tpl.ID = ""
	tpl.CreatedAt = time.Time{}
	tpl.UpdatedAt = time.Time{}
	if newName != "" {
		tpl.Name = newName
	} else {
		tpl.Name = tpl.Name + " (Copy)"
	}

	return r.Save(tpl)
}

func (r *fileRegistry) path(id string) string {
	return filepath.Join(r.dir, id+".json")
}

// containsFold 大小写不敏感的子串匹配
func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
