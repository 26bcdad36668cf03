// Package i18n renders short headings for diagnostic kinds and issue codes.
package i18n

import "strings"

// Translator retrieves localized messages for diagnostic kinds and Issue
// codes. data provides optional values to embed in the message (for
// example, "count").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

// New returns the built-in Translator for lang ("en" or "ja"). Any other
// value falls back to English.
func New(lang string) Translator {
	if lang != "ja" {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}

// Supported reports whether lang has a built-in dictionary.
func Supported(lang string) bool { return lang == "en" || lang == "ja" }

func (t dictTranslator) Message(code string, data map[string]string) string {
	dict := en
	if t.lang == "ja" {
		dict = ja
	}
	msg, ok := dict[code]
	if !ok {
		return code
	}
	return expand(msg, data)
}

var en = map[string]string{
	// structural kinds
	"no_root":           "no root node found; the graph might have cycles",
	"multiple_roots":    "multiple root nodes found",
	"entry_mismatch":    "entry_node does not match the root node",
	"missing_reference": "missing node references found: {count}",
	"orphaned_node":     "orphaned nodes found (not reachable from root): {count}",
	"duplicate_id":      "duplicate node ids found: {count}",
	"fan_in":            "nodes have multiple parents: {count}",
	// issue codes
	"invalid_type":     "invalid type",
	"required":         "required property missing",
	"unknown_key":      "unknown key",
	"duplicate_key":    "duplicate key",
	"too_small":        "too small",
	"too_big":          "too big",
	"too_short":        "too short",
	"too_long":         "too long",
	"pattern":          "pattern mismatch",
	"invalid_enum":     "value not allowed",
	"invalid_format":   "invalid format",
	"parse_error":      "parse error",
	"truncated":        "truncated",
	"schema_violation": "schema violation",
	// report lines
	"schema_ok":         "validates against the schema",
	"schema_failed":     "schema validation failed",
	"structure_failed":  "graph structure validation failed",
	"structure_ok":      "structure is valid",
	"structure_issues":  "structure has issues that need to be fixed",
	"unreadable":        "could not be validated",
	"all_reachable":     "all nodes are reachable from root",
	"single_root":       "exactly one root node found",
	"entry_ok":          "entry_node correctly points to root",
	"total_nodes":       "total nodes",
	"root_nodes":        "root nodes found",
	"verifying":         "verifying structure for",
	"summary":           "{passed} of {total} files passed",
}

var ja = map[string]string{
	"no_root":           "ルートノードがありません(循環の可能性があります)",
	"multiple_roots":    "ルートノードが複数あります",
	"entry_mismatch":    "entry_node がルートノードと一致しません",
	"missing_reference": "存在しないノードへの参照: {count} 件",
	"orphaned_node":     "ルートから到達できないノード: {count} 件",
	"duplicate_id":      "重複したノード ID: {count} 件",
	"fan_in":            "複数の親を持つノード: {count} 件",
	"invalid_type":      "型が不正です",
	"required":          "必須プロパティが不足しています",
	"unknown_key":       "未知のキーです",
	"duplicate_key":     "キーが重複しています",
	"too_small":         "小さすぎます",
	"too_big":           "大きすぎます",
	"too_short":         "短すぎます",
	"too_long":          "長すぎます",
	"pattern":           "パターンに一致しません",
	"invalid_enum":      "許可されていない値です",
	"invalid_format":    "形式が不正です",
	"parse_error":       "解析エラー",
	"truncated":         "打ち切られました",
	"schema_violation":  "スキーマ違反",
	"schema_ok":         "スキーマに適合しています",
	"schema_failed":     "スキーマ検証に失敗しました",
	"structure_failed":  "グラフ構造の検証に失敗しました",
	"structure_ok":      "構造は正しいです",
	"structure_issues":  "構造に修正が必要な問題があります",
	"unreadable":        "検証できませんでした",
	"all_reachable":     "すべてのノードにルートから到達できます",
	"single_root":       "ルートノードはちょうど 1 つです",
	"entry_ok":          "entry_node はルートを指しています",
	"total_nodes":       "ノード数",
	"root_nodes":        "ルートノード数",
	"verifying":         "構造を検証中",
	"summary":           "{total} ファイル中 {passed} ファイルが成功",
}

// expand replaces {key} placeholders with values from data.
func expand(msg string, data map[string]string) string {
	if len(data) == 0 {
		return msg
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
