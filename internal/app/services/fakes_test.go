package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/yigit/capstone/internal/app/models"
	"github.com/yigit/capstone/internal/app/repositories"
)

// fakeStore is an in-memory stand-in for the database shared by the fake
// repositories below.
type fakeStore struct {
	students map[string]*models.Student
	staffs   map[string]*models.Staff
	admins   map[string]*models.Admin
	projects map[string]*models.Project
	reviews  map[string]*models.Review
	seq      int

	// failAfterCreate makes CreateWithReview fail after all rows were written
	failAfterCreate error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		students: map[string]*models.Student{},
		staffs:   map[string]*models.Staff{},
		admins:   map[string]*models.Admin{},
		projects: map[string]*models.Project{},
		reviews:  map[string]*models.Review{},
	}
}

func (s *fakeStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%03d", prefix, s.seq)
}

func copyStudent(st *models.Student) *models.Student {
	c := *st
	if st.ProjectID != nil {
		id := *st.ProjectID
		c.ProjectID = &id
	}
	return &c
}

func copyReview(r *models.Review, stages []models.Stage) *models.Review {
	c := &models.Review{ID: r.ID, ProjectID: r.ProjectID}
	for _, stage := range stages {
		if rec := r.Stage(stage); rec != nil {
			recCopy := *rec
			c.SetStage(stage, &recCopy)
		}
	}
	return c
}

// snapshot deep-copies the store so a failed transaction can be undone
func (s *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	snap.seq = s.seq
	for k, v := range s.students {
		snap.students[k] = copyStudent(v)
	}
	for k, v := range s.staffs {
		c := *v
		snap.staffs[k] = &c
	}
	for k, v := range s.admins {
		c := *v
		snap.admins[k] = &c
	}
	for k, v := range s.projects {
		c := *v
		snap.projects[k] = &c
	}
	for k, v := range s.reviews {
		snap.reviews[k] = copyReview(v, models.Stages)
	}
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.students, s.staffs, s.admins = snap.students, snap.staffs, snap.admins
	s.projects, s.reviews, s.seq = snap.projects, snap.reviews, snap.seq
}

func (s *fakeStore) addStaff(id string) *models.Staff {
	st := &models.Staff{ID: id, FullName: "Guide " + id, Email: id + "@college.edu", Specializations: []string{}}
	s.staffs[id] = st
	return st
}

func (s *fakeStore) addStudent(id, regNo string) *models.Student {
	st := &models.Student{ID: id, FullName: "Student " + id, RegNo: regNo, Email: id + "@college.edu"}
	s.students[id] = st
	return st
}

// addProject inserts a project with a fully provisioned review
func (s *fakeStore) addProject(staffID string, studentIDs ...string) *models.Project {
	p := &models.Project{ID: s.nextID("p"), Title: "Project", StaffID: staffID, CreatedAt: time.Now()}
	s.projects[p.ID] = p
	review := &models.Review{ID: s.nextID("r"), ProjectID: p.ID}
	for _, stage := range models.Stages {
		review.SetStage(stage, &models.StageRecord{ID: s.nextID(string(stage)), ReviewID: review.ID})
	}
	s.reviews[review.ID] = review
	for _, id := range studentIDs {
		pid := p.ID
		s.students[id].ProjectID = &pid
	}
	return p
}

func (s *fakeStore) reviewOf(projectID string) *models.Review {
	for _, r := range s.reviews {
		if r.ProjectID == projectID {
			return r
		}
	}
	return nil
}

// fakeProjectRepo implements repositories.IProjectRepository
type fakeProjectRepo struct {
	store *fakeStore
}

func (r *fakeProjectRepo) RunInTx(ctx context.Context, fn func(ctx context.Context, repo repositories.IProjectRepository) error) error {
	snap := r.store.snapshot()
	if err := fn(ctx, r); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

func (r *fakeProjectRepo) LockStaff(_ context.Context, staffID string) (*models.Staff, error) {
	st, ok := r.store.staffs[staffID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *st
	return &c, nil
}

func (r *fakeProjectRepo) CountByStaff(_ context.Context, staffID string) (int, error) {
	n := 0
	for _, p := range r.store.projects {
		if p.StaffID == staffID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProjectRepo) LockStudents(_ context.Context, ids []string) ([]*models.Student, error) {
	out := []*models.Student{}
	for _, id := range ids {
		if st, ok := r.store.students[id]; ok {
			out = append(out, copyStudent(st))
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) CreateWithReview(_ context.Context, project *models.Project, studentIDs []string) error {
	project.ID = r.store.nextID("p")
	project.CreatedAt = time.Now()
	stored := *project
	r.store.projects[project.ID] = &stored

	review := &models.Review{ID: r.store.nextID("r"), ProjectID: project.ID}
	for _, stage := range models.Stages {
		review.SetStage(stage, &models.StageRecord{ID: r.store.nextID(string(stage)), ReviewID: review.ID})
	}
	r.store.reviews[review.ID] = review
	project.Review = copyReview(review, models.Stages)

	for _, id := range studentIDs {
		st := r.store.students[id]
		if st.ProjectID != nil {
			return repositories.ErrStudentAlreadyAssigned
		}
		pid := project.ID
		st.ProjectID = &pid
	}
	return r.store.failAfterCreate
}

func (r *fakeProjectRepo) List(_ context.Context, filter repositories.ProjectFilter) ([]*models.Project, error) {
	stages := filter.Stages
	if stages == nil {
		stages = models.Stages
	}

	out := []*models.Project{}
	for _, p := range r.store.projects {
		if filter.ID != "" && p.ID != filter.ID {
			continue
		}
		if filter.StaffID != "" && p.StaffID != filter.StaffID {
			continue
		}
		c := *p
		if st, ok := r.store.staffs[p.StaffID]; ok {
			staffCopy := *st
			c.Staff = &staffCopy
		}
		c.Students = []*models.Student{}
		for _, st := range r.store.students {
			if st.ProjectID != nil && *st.ProjectID == p.ID {
				c.Students = append(c.Students, copyStudent(st))
			}
		}
		sort.Slice(c.Students, func(i, j int) bool { return c.Students[i].RegNo < c.Students[j].RegNo })
		if review := r.store.reviewOf(p.ID); review != nil {
			c.Review = copyReview(review, stages)
		}
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	projects, _ := r.List(ctx, repositories.ProjectFilter{ID: id})
	if len(projects) == 0 {
		return nil, repositories.ErrNotFound
	}
	return projects[0], nil
}

func (r *fakeProjectRepo) DeleteTree(_ context.Context, id string) error {
	if _, ok := r.store.projects[id]; !ok {
		return repositories.ErrNotFound
	}
	if review := r.store.reviewOf(id); review != nil {
		delete(r.store.reviews, review.ID)
	}
	delete(r.store.projects, id)
	for _, st := range r.store.students {
		if st.ProjectID != nil && *st.ProjectID == id {
			st.ProjectID = nil
		}
	}
	return nil
}

// fakeReviewRepo implements repositories.IReviewRepository
type fakeReviewRepo struct {
	store *fakeStore
}

func (r *fakeReviewRepo) GetWithStages(_ context.Context, reviewID string) (*models.Review, error) {
	review, ok := r.store.reviews[reviewID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyReview(review, models.Stages), nil
}

func (r *fakeReviewRepo) UpdateStage(_ context.Context, stage models.Stage, recordID string, fields map[string]interface{}) (*models.StageRecord, error) {
	for _, review := range r.store.reviews {
		rec := review.Stage(stage)
		if rec == nil || rec.ID != recordID {
			continue
		}
		for column, value := range fields {
			switch column {
			case "score":
				if value == nil {
					rec.Score = nil
				} else {
					v := value.(int)
					rec.Score = &v
				}
			case "remarks", "status":
				var target **string
				if column == "remarks" {
					target = &rec.Remarks
				} else {
					target = &rec.Status
				}
				if value == nil {
					*target = nil
				} else {
					v := value.(string)
					*target = &v
				}
			}
		}
		rec.UpdatedAt = time.Now()
		c := *rec
		return &c, nil
	}
	return nil, repositories.ErrNotFound
}

// fakeStaffRepo implements repositories.IStaffRepository
type fakeStaffRepo struct {
	store *fakeStore
}

func (r *fakeStaffRepo) Create(_ context.Context, staff *models.Staff) error {
	for _, st := range r.store.staffs {
		if st.Email == staff.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	staff.ID = r.store.nextID("staff")
	c := *staff
	r.store.staffs[staff.ID] = &c
	return nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id string) (*models.Staff, error) {
	st, ok := r.store.staffs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *st
	return &c, nil
}

func (r *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*models.Staff, error) {
	for _, st := range r.store.staffs {
		if st.Email == email {
			c := *st
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeStaffRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.store.staffs[id]
	return ok, nil
}

func (r *fakeStaffRepo) List(_ context.Context) ([]*models.Staff, error) {
	out := []*models.Staff{}
	for _, st := range r.store.staffs {
		c := *st
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *fakeStaffRepo) Update(_ context.Context, id string, fields map[string]interface{}) (*models.Staff, error) {
	st, ok := r.store.staffs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	for column, value := range fields {
		switch column {
		case "full_name":
			st.FullName = value.(string)
		case "email":
			st.Email = value.(string)
		case "password":
			st.Password = value.(string)
		case "specializations":
			st.Specializations = value.([]string)
		case "profile_img":
			st.ProfileImg = value.([]byte)
		case "profile_img_type":
			st.ProfileImgType = value.(string)
		}
	}
	c := *st
	return &c, nil
}

func (r *fakeStaffRepo) DeleteWithProjects(ctx context.Context, id string) error {
	if _, ok := r.store.staffs[id]; !ok {
		return repositories.ErrNotFound
	}
	projects := &fakeProjectRepo{store: r.store}
	for pid, p := range r.store.projects {
		if p.StaffID == id {
			_ = projects.DeleteTree(ctx, pid)
		}
	}
	delete(r.store.staffs, id)
	return nil
}

// fakeStudentRepo implements repositories.IStudentRepository
type fakeStudentRepo struct {
	store *fakeStore
}

func (r *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	for _, st := range r.store.students {
		if st.RegNo == student.RegNo {
			return repositories.ErrDuplicateRegNo
		}
		if st.Email == student.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	student.ID = r.store.nextID("s")
	r.store.students[student.ID] = copyStudent(student)
	return nil
}

func (r *fakeStudentRepo) find(match func(*models.Student) bool) (*models.Student, error) {
	for _, st := range r.store.students {
		if match(st) {
			return copyStudent(st), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id string) (*models.Student, error) {
	return r.find(func(st *models.Student) bool { return st.ID == id })
}

func (r *fakeStudentRepo) GetByRegNo(_ context.Context, regNo string) (*models.Student, error) {
	return r.find(func(st *models.Student) bool { return st.RegNo == regNo })
}

func (r *fakeStudentRepo) GetByRegNoAndEmail(_ context.Context, regNo, email string) (*models.Student, error) {
	return r.find(func(st *models.Student) bool { return st.RegNo == regNo && st.Email == email })
}

func (r *fakeStudentRepo) List(_ context.Context) ([]*models.Student, error) {
	out := []*models.Student{}
	for _, st := range r.store.students {
		out = append(out, copyStudent(st))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegNo < out[j].RegNo })
	return out, nil
}

func (r *fakeStudentRepo) Update(_ context.Context, id string, fields map[string]interface{}) (*models.Student, error) {
	st, ok := r.store.students[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if regNo, ok := fields["reg_no"].(string); ok {
		for _, other := range r.store.students {
			if other.ID != id && other.RegNo == regNo {
				return nil, repositories.ErrDuplicateRegNo
			}
		}
	}
	for column, value := range fields {
		v := value.(string)
		switch column {
		case "full_name":
			st.FullName = v
		case "reg_no":
			st.RegNo = v
		case "batch":
			st.Batch = v
		case "email":
			st.Email = v
		case "phone_no":
			st.PhoneNo = v
		case "password":
			st.Password = v
		}
	}
	return copyStudent(st), nil
}

func (r *fakeStudentRepo) UpdatePasswordByRegNo(_ context.Context, regNo, passwordHash string) error {
	for _, st := range r.store.students {
		if st.RegNo == regNo {
			st.Password = passwordHash
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeStudentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.store.students[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.store.students, id)
	return nil
}

// fakeAdminRepo implements repositories.IAdminRepository
type fakeAdminRepo struct {
	store *fakeStore
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *models.Admin) error {
	for _, a := range r.store.admins {
		if a.Email == admin.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	admin.ID = r.store.nextID("a")
	c := *admin
	r.store.admins[admin.ID] = &c
	return nil
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id string) (*models.Admin, error) {
	a, ok := r.store.admins[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	for _, a := range r.store.admins {
		if a.Email == email {
			c := *a
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAdminRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeAdminRepo) List(_ context.Context) ([]*models.Admin, error) {
	out := []*models.Admin{}
	for _, a := range r.store.admins {
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeAdminRepo) Update(_ context.Context, id string, fields map[string]interface{}) (*models.Admin, error) {
	a, ok := r.store.admins[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	for column, value := range fields {
		switch column {
		case "full_name":
			a.FullName = value.(string)
		case "email":
			a.Email = value.(string)
		case "password":
			a.Password = value.(string)
		}
	}
	c := *a
	return &c, nil
}

func (r *fakeAdminRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.store.admins[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.store.admins, id)
	return nil
}

var (
	_ repositories.IProjectRepository = (*fakeProjectRepo)(nil)
	_ repositories.IReviewRepository  = (*fakeReviewRepo)(nil)
	_ repositories.IStaffRepository   = (*fakeStaffRepo)(nil)
	_ repositories.IStudentRepository = (*fakeStudentRepo)(nil)
	_ repositories.IAdminRepository   = (*fakeAdminRepo)(nil)
)
