package hero

import "time"

// 永続化フォーマット。データファイル（heroes.json）は
// Hero の配列を2スペースインデントで整形したJSONとして保存する。
// 配列の並び順が表示順であり、新規レコードは常に末尾に追加する。

// Hero はヒーローレコードを表す。
// JSONタグはデータファイルとAPIレスポンスの両方で共通して使用する。
type Hero struct {
	// ID はストアが採番するヒーローの一意識別子。
	ID string `json:"id"`
	// SuperName はヒーロー名。必須項目。
	SuperName string `json:"superName"`
	// RealName は本名。任意項目。
	RealName string `json:"realName,omitempty"`
	// Superpower は能力の説明。任意項目。
	Superpower string `json:"superpower,omitempty"`
	// PowerLevel は能力の強さ。入力が無い、または整数として
	// 解釈できない場合はnilとなり、JSONには出力されない。
	PowerLevel *int `json:"powerLevel,omitempty"`
	// SecretIdentity は正体を隠しているかどうか。
	// 入力文字列が "true" に完全一致した場合のみtrueとなる。
	SecretIdentity bool `json:"secretIdentity"`
	// CreatedAt は作成日時。
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt は最終更新日時。一度も更新されていない場合は出力されない。
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// HeroParams はヒーローの作成・更新時に受け取る入力値。
// PowerLevelとSecretIdentityはフォーム由来の文字列のまま受け取り、
// ストア側で型変換する。
type HeroParams struct {
	// SuperName はヒーロー名。必須項目。
	SuperName string
	// RealName は本名。
	RealName string
	// Superpower は能力の説明。
	Superpower string
	// PowerLevel は能力の強さの文字列表現。
	PowerLevel string
	// SecretIdentity は正体を隠しているかどうかの文字列表現。
	SecretIdentity string
}
