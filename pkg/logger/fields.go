package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldNoteID 笔记 ID 字段
	FieldNoteID = "noteId"

	// FieldTitle 笔记标题字段
	FieldTitle = "title"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldPath 请求路径字段
	FieldPath = "path"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldStatus HTTP 状态码字段
	FieldStatus = "status"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldRows 影响行数字段
	FieldRows = "rows"

	// FieldSQL SQL 语句字段
	FieldSQL = "sql"
)
