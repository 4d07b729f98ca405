package board

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// LoadError 棋盘文件缺失或内容不足 16 个合法整数
type LoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load board %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("load board %s: %s", e.Source, e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Source 参考棋盘的提供者
type Source interface {
	Load() (Grid, error)
}

// FileSource 从逗号分隔的文本文件读取棋盘
type FileSource struct {
	Path string
}

// Load 读取并解析棋盘文件
func (s FileSource) Load() (Grid, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return Grid{}, &LoadError{Source: s.Path, Reason: "open failed", Err: err}
	}
	defer func() { _ = f.Close() }()

	g, err := Parse(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Source = s.Path
		}
		return Grid{}, err
	}
	return g, nil
}

// StaticSource 返回固定棋盘，测试和重复对局使用
type StaticSource Grid

// Load 返回棋盘副本
func (s StaticSource) Load() (Grid, error) {
	return Grid(s), nil
}

// Parse 按行优先读取 16 个整数，分隔符可以是逗号或空白。
// 第 16 个之后的内容被忽略。
func Parse(r io.Reader) (Grid, error) {
	var g Grid

	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	n := 0
	for n < CellCount && sc.Scan() {
		fields := strings.FieldsFunc(sc.Text(), func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		for _, field := range fields {
			if n == CellCount {
				break
			}
			v, err := strconv.Atoi(field)
			if err != nil {
				return Grid{}, &LoadError{Reason: fmt.Sprintf("value %d is not an integer", n+1), Err: err}
			}
			if v < int(Mine) || v > 8 {
				return Grid{}, &LoadError{Reason: fmt.Sprintf("value %d out of range: %d", n+1, v)}
			}
			g[n/Size][n%Size] = Cell(v)
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return Grid{}, &LoadError{Reason: "read failed", Err: err}
	}
	if n < CellCount {
		return Grid{}, &LoadError{Reason: fmt.Sprintf("expected %d values, got %d", CellCount, n)}
	}
	return g, nil
}
