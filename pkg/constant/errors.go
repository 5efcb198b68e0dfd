/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-09-02 11:42:18
 * @LastEditTime: 2025-10-21 17:35:09
 * @LastEditors: 安知鱼
 */
package constant

import "errors"

// 定义业务逻辑相关的标准错误
var (
	// ErrNotFound 表示资源未找到，可以由 Handler 转换为 404
	ErrNotFound = errors.New("资源未找到")

	// ErrBadRequest 表示请求参数错误，可以由 Handler 转换为 400
	ErrBadRequest = errors.New("错误的请求")

	// ErrUnauthorized 表示未授权，可以由 Handler 转换为 401
	ErrUnauthorized = errors.New("未经授权的访问")

	// ErrInvalidToken 表示无效的令牌，可以由 Handler 转换为 401
	ErrInvalidToken = errors.New("无效令牌")

	// ErrConflict 表示资源冲突，可以由 Handler 转换为 409
	ErrConflict = errors.New("资源冲突")

	// ErrInternalServer 表示服务器内部错误，可以由 Handler 转换为 500
	ErrInternalServer = errors.New("内部服务器错误")

	// ErrEmailExists 表示注册邮箱已被占用
	ErrEmailExists = errors.New("邮箱已被注册")

	// ErrPasswordMismatch 表示登录密码错误
	ErrPasswordMismatch = errors.New("邮箱或密码错误")

	// ErrFeatureFormat 表示 Solr 返回的特征字符串无法解析
	ErrFeatureFormat = errors.New("特征字符串格式错误")
)
