package errcode

// 任务通知中的错误码：
// - 0：成功
// - 4xxx：配置或资源缺失，重试无意义
// - 5xxx：处理过程中的系统错误
const (
	OK              = 0
	ResourceMissing = 4004
	SystemError     = 5000
	RenderFailed    = 5001
	UploadFailed    = 5002
)

