package code

import "net/http"

var (
	Success       = NewSuss(200, lang{en: "Success", zh_cn: "成功", ru: "Успешно"})
	SuccessCreate = NewSuss(201, lang{en: "Created successfully", zh_cn: "创建成功", ru: "Создано"})
	SuccessUpdate = NewSuss(202, lang{en: "Updated successfully", zh_cn: "更新成功", ru: "Обновлено"})
	SuccessDelete = NewSuss(203, lang{en: "Deleted successfully", zh_cn: "删除成功", ru: "Удалено"})

	ErrorServerInternal  = NewError(500, http.StatusInternalServerError, lang{en: "Internal server error", zh_cn: "服务器内部错误", ru: "Внутренняя ошибка сервера"})
	ErrorNotFoundPage    = NewError(404, http.StatusNotFound, lang{en: "Page not found", zh_cn: "页面不存在", ru: "Страница не найдена"})
	ErrorInvalidParams   = NewError(400, http.StatusBadRequest, lang{en: "Invalid parameters", zh_cn: "参数错误", ru: "Неверные параметры"})
	ErrorTooManyRequests = NewError(429, http.StatusTooManyRequests, lang{en: "Too many requests", zh_cn: "请求过多", ru: "Слишком много запросов"})

	ErrorDBQuery      = NewError(505, http.StatusInternalServerError, lang{en: "Database query failed", zh_cn: "数据库查询失败", ru: "Ошибка запроса к базе данных"})
	ErrorNoteNotFound = NewError(431, http.StatusNotFound, lang{en: "Note not found", zh_cn: "笔记不存在", ru: "Заметка не найдена"})
	ErrorNoteInvalid  = NewError(432, http.StatusBadRequest, lang{en: "Note title and text are required", zh_cn: "笔记标题和内容不能为空", ru: "Заголовок и текст обязательны"})
)
