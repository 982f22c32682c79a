package code

// Registered result codes. Ranges: 0 success, 1xx framework,
// 2xx user/auth, 3xx event, 4xx collaboration, 5xx version ledger.
var (
	Success = NewSuss(0, lang{en: "ok", zh_cn: "成功"})

	ErrorInvalidParams   = NewError(100, lang{en: "invalid request parameters", zh_cn: "请求参数错误"})
	ErrorServerInternal  = NewError(101, lang{en: "internal server error", zh_cn: "服务内部错误"})
	ErrorTooManyRequests = NewError(102, lang{en: "too many requests", zh_cn: "请求过多"})
	ErrorDBQuery         = NewError(103, lang{en: "database query failed", zh_cn: "数据库查询错误"})
	ErrorNotFoundAPI     = NewError(104, lang{en: "api route not found", zh_cn: "接口不存在"})

	ErrorNotUserAuthToken        = NewError(200, lang{en: "missing auth token", zh_cn: "缺少鉴权 Token"})
	ErrorInvalidUserAuthToken    = NewError(201, lang{en: "invalid auth token", zh_cn: "鉴权 Token 无效"})
	ErrorTokenBlacklisted        = NewError(202, lang{en: "token has been revoked", zh_cn: "Token 已注销"})
	ErrorTokenGenerate           = NewError(203, lang{en: "failed to generate token", zh_cn: "Token 生成失败"})
	ErrorInvalidRefreshToken     = NewError(204, lang{en: "invalid refresh token", zh_cn: "刷新 Token 无效"})
	ErrorUserRegisterIsDisable   = NewError(210, lang{en: "registration is disabled", zh_cn: "注册功能已关闭"})
	ErrorUserAlreadyExists       = NewError(211, lang{en: "username already registered", zh_cn: "用户名已注册"})
	ErrorUserEmailAlreadyExists  = NewError(212, lang{en: "email already registered", zh_cn: "邮箱已注册"})
	ErrorUserUsernameNotValid    = NewError(213, lang{en: "invalid username", zh_cn: "用户名不合法"})
	ErrorUserPasswordNotMatch    = NewError(214, lang{en: "passwords do not match", zh_cn: "两次密码不一致"})
	ErrorUserLoginPasswordFailed = NewError(215, lang{en: "invalid credentials", zh_cn: "用户名或密码错误"})
	ErrorUserNotFound            = NewError(216, lang{en: "user not found", zh_cn: "用户不存在"})
	ErrorUserRegister            = NewError(217, lang{en: "failed to register user", zh_cn: "用户注册失败"})
	ErrorPasswordNotValid        = NewError(218, lang{en: "invalid password", zh_cn: "密码不合法"})
	ErrorUserOldPasswordFailed   = NewError(219, lang{en: "old password incorrect", zh_cn: "旧密码错误"})

	ErrorEventNotFound     = NewError(300, lang{en: "event not found", zh_cn: "日程不存在"})
	ErrorEventCreateFailed = NewError(301, lang{en: "failed to create event", zh_cn: "日程创建失败"})
	ErrorEventUpdateFailed = NewError(302, lang{en: "failed to update event", zh_cn: "日程更新失败"})
	ErrorEventDeleteFailed = NewError(303, lang{en: "failed to delete event", zh_cn: "日程删除失败"})
	ErrorEventTimeRange    = NewError(304, lang{en: "event end time before start time", zh_cn: "结束时间早于开始时间"})

	ErrorPermissionDenied        = NewError(400, lang{en: "permission denied", zh_cn: "没有操作权限"})
	ErrorPermissionNotFound      = NewError(401, lang{en: "permission not found", zh_cn: "授权记录不存在"})
	ErrorPermissionAlreadyExists = NewError(402, lang{en: "user already has access", zh_cn: "用户已被授权"})
	ErrorPermissionInvalidRole   = NewError(403, lang{en: "invalid role", zh_cn: "角色不合法"})
	ErrorPermissionShareFailed   = NewError(404, lang{en: "failed to share event", zh_cn: "日程分享失败"})
	ErrorPermissionOwnerChange   = NewError(405, lang{en: "owner role cannot be changed", zh_cn: "不能变更所有者角色"})

	ErrorVersionNotFound   = NewError(500, lang{en: "version not found", zh_cn: "版本不存在"})
	ErrorVersionWrongEvent = NewError(501, lang{en: "version does not belong to this event", zh_cn: "版本不属于该日程"})
	ErrorVersionConflict   = NewError(502, lang{en: "concurrent version conflict, please retry", zh_cn: "版本并发冲突，请重试"})
	ErrorVersionAppend     = NewError(503, lang{en: "failed to append version", zh_cn: "版本写入失败"})
	ErrorChangelogNotFound = NewError(504, lang{en: "changelog not found", zh_cn: "变更记录不存在"})
	ErrorChangelogAppend   = NewError(505, lang{en: "failed to record changelog", zh_cn: "变更记录写入失败"})
	ErrorRollbackFailed    = NewError(506, lang{en: "failed to roll back event", zh_cn: "日程回滚失败"})
	ErrorDiffFailed        = NewError(507, lang{en: "failed to compute diff", zh_cn: "差异计算失败"})
)
