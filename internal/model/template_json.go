package model

import (
	"encoding/json"
	"fmt"

	"github.com/openreportkit/backend/internal/vocab"
)

// sectionEnvelope Section 的 JSON 外壳
// 序列化格式为 {kind, order, condition?, <kind>_config}
type sectionEnvelope struct {
	Kind      vocab.SectionKind `json:"kind"`
	Order     int               `json:"order"`
	Condition *Condition        `json:"condition,omitempty"`

	Title     *TitleConfig     `json:"title_config,omitempty"`
	Header    *HeaderConfig    `json:"header_config,omitempty"`
	FieldGrid *FieldGridConfig `json:"field_grid_config,omitempty"`
	DataTable *DataTableConfig `json:"data_table_config,omitempty"`
	Text      *TextConfig      `json:"text_config,omitempty"`
	Image     *ImageConfig     `json:"image_config,omitempty"`
	Signature *SignatureConfig `json:"signature_config,omitempty"`
	Divider   *DividerConfig   `json:"divider_config,omitempty"`
	Spacer    *SpacerConfig    `json:"spacer_config,omitempty"`
	PageBreak *PageBreakConfig `json:"page_break_config,omitempty"`
}

// MarshalJSON 按 kind 只输出对应的配置字段
func (s Section) MarshalJSON() ([]byte, error) {
	env := sectionEnvelope{
		Kind:      s.Kind,
		Order:     s.Order,
		Condition: s.Condition,
	}

	switch cfg := s.Config.(type) {
	case TitleConfig:
		env.Title = &cfg
	case HeaderConfig:
		env.Header = &cfg
	case FieldGridConfig:
		env.FieldGrid = &cfg
	case DataTableConfig:
		env.DataTable = &cfg
	case TextConfig:
		env.Text = &cfg
	case ImageConfig:
		env.Image = &cfg
	case SignatureConfig:
		env.Signature = &cfg
	case DividerConfig:
		env.Divider = &cfg
	case SpacerConfig:
		env.Spacer = &cfg
	case PageBreakConfig:
		env.PageBreak = &cfg
	case nil:
		return nil, fmt.Errorf("section has no config: kind=%s", s.Kind)
	default:
		return nil, fmt.Errorf("unknown section config type: %T", s.Config)
	}

	return json.Marshal(env)
}

// UnmarshalJSON 只按 kind 选取配置，多余的配置字段一律忽略
// kind 缺失或没有对应配置视为模板损坏，直接报错
func (s *Section) UnmarshalJSON(data []byte) error {
	var env sectionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("malformed section: %w", err)
	}

	if env.Kind == "" {
		return fmt.Errorf("section missing kind")
	}

	s.Kind = env.Kind
	s.Order = env.Order
	s.Condition = env.Condition

	switch env.Kind {
	case vocab.SectionTitle:
		if env.Title == nil {
			return missingConfig(env.Kind)
		}
		s.Config = *env.Title
	case vocab.SectionHeader:
		if env.Header == nil {
			return missingConfig(env.Kind)
		}
		s.Config = *env.Header
	case vocab.SectionFieldGrid:
		if env.FieldGrid == nil {
			return missingConfig(env.Kind)
		}
		s.Config = *env.FieldGrid
	case vocab.SectionDataTable:
		if env.DataTable == nil {
			return missingConfig(env.Kind)
		}
		s.Config = *env.DataTable
	case vocab.SectionText:
		if env.Text == nil {
			return missingConfig(env.Kind)
		}
		s.Config = *env.Text
	case vocab.SectionImage:
		if env.Image == nil {
			return missingConfig(env.Kind)
		}
		s.Config = *env.Image
	case vocab.SectionSignature:
		if env.Signature == nil {
			return missingConfig(env.Kind)
		}
		s.Config = *env.Signature
	case vocab.SectionDivider:
		// 分隔线/留白/分页允许省略配置体
		s.Config = DividerConfig{}
	case vocab.SectionSpacer:
		if env.Spacer != nil {
			s.Config = *env.Spacer
		} else {
			s.Config = SpacerConfig{}
		}
	case vocab.SectionPageBreak:
		s.Config = PageBreakConfig{}
	default:
		return fmt.Errorf("unknown section kind: %s", env.Kind)
	}

	return nil
}

func missingConfig(kind vocab.SectionKind) error {
	return fmt.Errorf("section kind %s missing %s_config", kind, kind)
}

// MarshalTemplate 序列化模板
func MarshalTemplate(t *ReportTemplate) ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template: %w", err)
	}
	return data, nil
}

// UnmarshalTemplate 反序列化模板
// JSON 不合法或节配置缺失属于模板损坏，是需要上抛的硬错误
func UnmarshalTemplate(data []byte) (*ReportTemplate, error) {
	var t ReportTemplate
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("malformed template: %w", err)
	}
	return &t, nil
}
