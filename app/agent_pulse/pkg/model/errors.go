package model

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/errors"
)

// 失败原因。SearchFailure 与 MissingInput 会终止当前运行，GenerationFailure 由分析阶段就地兜底。
const (
	ReasonSearchFailure     = "SEARCH_FAILURE"
	ReasonMissingInput      = "MISSING_INPUT"
	ReasonGenerationFailure = "GENERATION_FAILURE"
)

// SearchFailure 搜索调用或悬赏快照写入失败
func SearchFailure(cause error, format string, args ...any) *errors.Error {
	return errors.ServiceUnavailable(ReasonSearchFailure, fmt.Sprintf(format, args...)).WithCause(cause)
}

// MissingInput 分析阶段找不到悬赏快照
func MissingInput(cause error, format string, args ...any) *errors.Error {
	return errors.NotFound(ReasonMissingInput, fmt.Sprintf(format, args...)).WithCause(cause)
}

// GenerationFailure 模型调用或响应解析失败
func GenerationFailure(cause error, format string, args ...any) *errors.Error {
	return errors.New(502, ReasonGenerationFailure, fmt.Sprintf(format, args...)).WithCause(cause)
}

func IsSearchFailure(err error) bool {
	return errors.Reason(err) == ReasonSearchFailure
}

func IsMissingInput(err error) bool {
	return errors.Reason(err) == ReasonMissingInput
}

func IsGenerationFailure(err error) bool {
	return errors.Reason(err) == ReasonGenerationFailure
}
