package services

import (
	"errors"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAgentLockOrder(t *testing.T) {
	cases := []struct {
		in, want []uint
	}{
		{[]uint{9, 2}, []uint{2, 9}},
		{[]uint{2, 9}, []uint{2, 9}},
		{[]uint{5, 5}, []uint{5}},
		{[]uint{3}, []uint{3}},
	}
	for _, tc := range cases {
		if got := agentLockOrder(tc.in...); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("agentLockOrder(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return gdb, mock
}

// 回执插入失败只回滚到 savepoint, 事务照常提交, 主写入保住
func TestRunBonusStage_NotifyFailureKeepsPrimaryWrite(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE agents`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SAVEPOINT bonus_stage`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "notifications"`).WillReturnError(errors.New("写入失败"))
	mock.ExpectExec(`ROLLBACK TO SAVEPOINT bonus_stage`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("UPDATE agents SET points = points + ? WHERE id = ?", 10, 1).Error; err != nil {
			return err
		}
		runBonusStage(tx, func() error {
			return notifyBonus(tx, 1, "奖励到账")
		})
		return nil
	})
	if err != nil {
		t.Fatalf("回执失败不应让主动作失败, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("语句序列不符: %v", err)
	}
}

// 有效举报奖励发放失败同样被 savepoint 兜住, 已落地的删除不受影响
func TestRunBonusStage_AccurateReportFailureKeepsDeletion(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE messages`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SAVEPOINT bonus_stage`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT "agent_id" FROM "reactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"agent_id"}).AddRow(3))
	mock.ExpectQuery(`INSERT INTO "point_logs"`).WillReturnError(errors.New("写入失败"))
	mock.ExpectExec(`ROLLBACK TO SAVEPOINT bonus_stage`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("UPDATE messages SET is_deleted = true WHERE id = ?", 7).Error; err != nil {
			return err
		}
		runBonusStage(tx, func() error {
			return awardAccurateReports(tx, 7)
		})
		return nil
	})
	if err != nil {
		t.Fatalf("奖励失败不应让删除失败, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("语句序列不符: %v", err)
	}
}
