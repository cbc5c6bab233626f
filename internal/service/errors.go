package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrPeriodInvalid           = errors.New("无效的统计周期")
	ErrUserNotFound            = errors.New("用户不存在")
	ErrUserEmailExist          = errors.New("邮箱已被注册")
	ErrUserUsernameExist       = errors.New("用户名已存在")
	ErrPasswordIncorrect       = errors.New("邮箱或密码错误")
	ErrMissingLoginCredentials = errors.New("缺少登录凭据")
	ErrUserAlreadyCreator      = errors.New("用户已是创作者")
	ErrProjectNotFound         = errors.New("项目不存在")
	ErrProjectNotPublished     = errors.New("项目未发布")
	ErrSlugExist               = errors.New("项目标识已存在")
	ErrMediaNotFound           = errors.New("媒体不存在")
	ErrFileNotSupported        = errors.New("不支持的文件类型")
	ErrSeedDataExists          = errors.New("示例数据已存在")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrPeriodInvalid:           BadRequest,
	ErrUserNotFound:            NotFound,
	ErrUserEmailExist:          Conflict,
	ErrUserUsernameExist:       Conflict,
	ErrPasswordIncorrect:       Unauthorized,
	ErrMissingLoginCredentials: Unauthorized,
	ErrUserAlreadyCreator:      BadRequest,
	ErrProjectNotFound:         NotFound,
	ErrProjectNotPublished:     NotFound,
	ErrSlugExist:               Conflict,
	ErrMediaNotFound:           NotFound,
	ErrFileNotSupported:        BadRequest,
	ErrSeedDataExists:          Conflict,
	UnauthorizedError:          Forbidden,
	UnExpectedError:            InternalServerError,
}
