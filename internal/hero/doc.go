// Package hero はヒーロー管理サービスの内部実装を提供する。
//
// 管理者のログインでセッションCookieを発行し、ヒーローレコードの
// CRUDを提供する。レコードは単一のJSONファイルに配列として永続化され、
// 変更操作のたびにコレクション全体を読み込んで書き戻す。
// 変更操作はミューテックスで直列化され、書き込みは一時ファイルへの
// 書き出しとリネームによるアトミックな差し替えで行う。
package hero
