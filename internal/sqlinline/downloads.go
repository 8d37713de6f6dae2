package sqlinline

const QListDownloads = `--sql 9a38f393-5f32-4059-bf84-8ad81c0a48a9
select id, name, category, storage_key, mime, size_bytes, coalesce(required_plan, ''), created_at
from downloads
where ($1::text = '' or category = $1::text)
order by created_at desc;
`

const QSelectDownloadByID = `--sql 98f7457e-de31-462c-864a-8abec793516a
select id, name, category, storage_key, mime, size_bytes, coalesce(required_plan, ''), created_at
from downloads
where id = $1::uuid;
`

const QSelectDownloadByKey = `--sql 0233fc66-f120-4f2e-9ae7-bcdef35dc670
select id, name, category, storage_key, mime, size_bytes, coalesce(required_plan, ''), created_at
from downloads
where storage_key = $1::text;
`

const QInsertDownload = `--sql bf51235c-a0fb-4d6b-a795-a3c52ef1852e
insert into downloads (id, name, category, storage_key, mime, size_bytes, required_plan, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, $4::text, $5::bigint, nullif($6::text, ''), now())
returning id;
`
