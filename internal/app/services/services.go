package services

// Services defined in this package:
// - AuthService: login, refresh token rotation and logout
// - StudentService: student CRUD, media uploads and cascading deletes
// - ShareService: fee installments and enablement reconciliation
// - MotionService: the standalone cash ledger
// - UserService: operator accounts and the admin invariants
// - ImportService: bulk spreadsheet ingestion with image re-hosting
// - NotificationService: batched bulk email dispatch
// - ExportService: Excel and PDF report rendering
