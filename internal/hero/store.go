package hero

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrHeroNotFound は指定されたIDのヒーローが存在しない場合に返す。
var ErrHeroNotFound = errors.New("ヒーローが見つかりません")

// ErrSuperNameRequired は必須項目のヒーロー名が空の場合に返す。
var ErrSuperNameRequired = errors.New("ヒーロー名（superName）は必須です")

// Store はヒーローレコードをJSONファイルに永続化するストア。
// 変更操作は読み込みから書き戻しまでをミューテックスで直列化する。
type Store struct {
	// mu は読み込み・変更・書き戻しサイクル全体を保護する。
	mu sync.Mutex
	// path はデータファイルのパス。
	path string
}

// NewStore は指定されたデータファイルを使用するストアを生成する。
// ファイルが存在しない場合は初回の読み込み時に空のコレクションを作成する。
func NewStore(path string) *Store {
	return &Store{path: path}
}

// List はヒーローの一覧を登録順で返す。
// データファイルが存在しない場合は空のコレクションを書き出してから
// 空のスライスを返す。ファイル欠落はエラーではなく「データ未登録」を意味する。
func (s *Store) List() ([]Hero, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	heroes, err := s.readHeroes()
	if err != nil {
		return nil, err
	}
	if heroes == nil {
		// ファイル未作成。空のコレクションで初期化する。
		if err := s.writeHeroes([]Hero{}); err != nil {
			return nil, err
		}
		return []Hero{}, nil
	}
	return heroes, nil
}

// Create は新しいヒーローを作成し、コレクション末尾に追加して永続化する。
// IDはUUIDで採番する。ヒーロー名が空の場合はErrSuperNameRequiredを返す。
func (s *Store) Create(params HeroParams) (Hero, error) {
	if params.SuperName == "" {
		return Hero{}, ErrSuperNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	heroes, err := s.readHeroes()
	if err != nil {
		return Hero{}, err
	}

	newHero := Hero{
		ID:             uuid.New().String(),
		SuperName:      params.SuperName,
		RealName:       params.RealName,
		Superpower:     params.Superpower,
		PowerLevel:     parsePowerLevel(params.PowerLevel),
		SecretIdentity: params.SecretIdentity == "true",
		CreatedAt:      time.Now().UTC(),
	}

	heroes = append(heroes, newHero)
	if err := s.writeHeroes(heroes); err != nil {
		return Hero{}, err
	}
	return newHero, nil
}

// Update は指定されたIDのヒーローの可変項目をすべて置き換えて永続化する。
// IDと作成日時は保持し、更新日時を現在時刻に設定する。
// IDが存在しない場合はコレクションを変更せずErrHeroNotFoundを返す。
func (s *Store) Update(id string, params HeroParams) (Hero, error) {
	if params.SuperName == "" {
		return Hero{}, ErrSuperNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	heroes, err := s.readHeroes()
	if err != nil {
		return Hero{}, err
	}

	for i := range heroes {
		if heroes[i].ID != id {
			continue
		}

		heroes[i].SuperName = params.SuperName
		heroes[i].RealName = params.RealName
		heroes[i].Superpower = params.Superpower
		heroes[i].PowerLevel = parsePowerLevel(params.PowerLevel)
		heroes[i].SecretIdentity = params.SecretIdentity == "true"
		heroes[i].UpdatedAt = time.Now().UTC()

		if err := s.writeHeroes(heroes); err != nil {
			return Hero{}, err
		}
		return heroes[i], nil
	}
	return Hero{}, ErrHeroNotFound
}

// Delete は指定されたIDのヒーローを削除して永続化する。
// IDが存在しない場合はErrHeroNotFoundを返す。
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	heroes, err := s.readHeroes()
	if err != nil {
		return err
	}

	filtered := make([]Hero, 0, len(heroes))
	for _, h := range heroes {
		if h.ID != id {
			filtered = append(filtered, h)
		}
	}
	if len(filtered) == len(heroes) {
		return ErrHeroNotFound
	}
	return s.writeHeroes(filtered)
}

// readHeroes はデータファイルからコレクション全体を読み込む。
// ファイルが存在しない場合はnilを返す（エラーではない）。
// 呼び出し側でmuを保持していること。
func (s *Store) readHeroes() ([]Hero, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("データファイルの読み込みに失敗: %w", err)
	}

	var heroes []Hero
	if err := json.Unmarshal(data, &heroes); err != nil {
		return nil, fmt.Errorf("データファイルのパースに失敗: %w", err)
	}
	if heroes == nil {
		heroes = []Hero{}
	}
	return heroes, nil
}

// writeHeroes はコレクション全体を整形済みJSONとして書き戻す。
// 同一ディレクトリの一時ファイルに書き出してからリネームすることで、
// 書き込み途中のファイルが読まれることを防ぐ。
// 呼び出し側でmuを保持していること。
func (s *Store) writeHeroes(heroes []Hero) error {
	data, err := json.MarshalIndent(heroes, "", "  ")
	if err != nil {
		return fmt.Errorf("コレクションのシリアライズに失敗: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("データディレクトリの作成に失敗: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "heroes-*.json")
	if err != nil {
		return fmt.Errorf("一時ファイルの作成に失敗: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("データファイルの書き込みに失敗: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("一時ファイルのクローズに失敗: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("データファイルの差し替えに失敗: %w", err)
	}
	return nil
}

// parsePowerLevel は能力値の文字列を整数に変換する。
// 空文字列または整数として解釈できない入力はnilを返す。
func parsePowerLevel(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
